package service

import (
	"context"
	"io"
	"testing"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("OK", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		store.On("GetUserByEmail", ctx, "alice@example.com").Return(nil, database.ErrUserNotFound).Once()
		store.On("CreateUser", ctx, mock.Anything).Return(nil).Once()

		user, err := svc.Create(ctx, &models.User{Email: "alice@example.com", Name: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("BlankEmail", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		_, err := svc.Create(ctx, &models.User{Email: "  ", Name: "Alice"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("MalformedEmail", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		_, err := svc.Create(ctx, &models.User{Email: "not-an-email", Name: "Alice"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("BlankName", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		_, err := svc.Create(ctx, &models.User{Email: "alice@example.com", Name: ""})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		store.On("GetUserByEmail", ctx, "alice@example.com").
			Return(&models.User{ID: 7, Email: "alice@example.com"}, nil).Once()

		_, err := svc.Create(ctx, &models.User{Email: "alice@example.com", Name: "Alice"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	existing := func() *models.User {
		return &models.User{ID: 1, Email: "alice@example.com", Name: "Alice"}
	}

	t.Run("PartialName", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		store.On("GetUser", ctx, int64(1)).Return(existing(), nil).Once()
		store.On("UpdateUser", ctx, mock.Anything).Return(nil).Once()

		name := "Alice B."
		user, err := svc.Update(ctx, 1, models.UserPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alice B.", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("EmailKeepsOwn", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		store.On("GetUser", ctx, int64(1)).Return(existing(), nil).Once()
		// Пользователь "меняет" email на свой же — не конфликт.
		store.On("GetUserByEmail", ctx, "alice@example.com").Return(existing(), nil).Once()
		store.On("UpdateUser", ctx, mock.Anything).Return(nil).Once()

		email := "alice@example.com"
		_, err := svc.Update(ctx, 1, models.UserPatch{Email: &email})
		require.NoError(t, err)
	})

	t.Run("EmailTakenByOther", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		store.On("GetUser", ctx, int64(1)).Return(existing(), nil).Once()
		store.On("GetUserByEmail", ctx, "bob@example.com").
			Return(&models.User{ID: 2, Email: "bob@example.com"}, nil).Once()

		email := "bob@example.com"
		_, err := svc.Update(ctx, 1, models.UserPatch{Email: &email})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		store := new(mockStore)
		svc := NewUserService(store, &logger)

		store.On("GetUser", ctx, int64(99)).Return(nil, database.ErrUserNotFound).Once()

		name := "x"
		_, err := svc.Update(ctx, 99, models.UserPatch{Name: &name})
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})
}

func TestUserServiceDelegates(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	store := new(mockStore)
	svc := NewUserService(store, &logger)

	store.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
	store.On("GetAllUsers", ctx).Return([]*models.User{{ID: 1}, {ID: 2}}, nil).Once()
	store.On("DeleteUser", ctx, int64(1)).Return(nil).Once()

	user, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	assert.NoError(t, svc.Delete(ctx, 1))
	store.AssertExpectations(t)
}
