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

func TestRequestService(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("Create", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		store.On("GetUser", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		store.On("CreateRequest", ctx, mock.Anything).Return(nil).Once()

		request, err := svc.Create(ctx, 2, "Нужна лестница")
		require.NoError(t, err)
		assert.Equal(t, int64(2), request.RequestorID)
		assert.False(t, request.Created.IsZero())
	})

	t.Run("CreateBlankDescription", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		_, err := svc.Create(ctx, 2, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("CreateUnknownUser", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		store.On("GetUser", ctx, int64(99)).Return(nil, database.ErrUserNotFound).Once()

		_, err := svc.Create(ctx, 99, "Нужна лестница")
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})

	t.Run("ListOwn", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		expected := []*models.ItemRequest{{ID: 1}, {ID: 2}}
		store.On("GetUser", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		store.On("GetRequestsByRequestor", ctx, int64(2)).Return(expected, nil).Once()

		requests, err := svc.ListOwn(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, expected, requests)
	})

	t.Run("ListAll", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		expected := []*models.ItemRequest{{ID: 3}}
		store.On("GetUser", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		store.On("GetRequestsOfOthers", ctx, int64(2), 0, 10).Return(expected, nil).Once()

		requests, err := svc.ListAll(ctx, 2, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, expected, requests)
	})

	t.Run("ListAllBadPagination", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		_, err := svc.ListAll(ctx, 2, 0, -5)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("GetUnknownRequest", func(t *testing.T) {
		store := new(mockStore)
		svc := NewRequestService(store, store, &logger)

		store.On("GetUser", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		store.On("GetRequest", ctx, int64(404)).Return(nil, database.ErrRequestNotFound).Once()

		_, err := svc.Get(ctx, 2, 404)
		assert.ErrorIs(t, err, database.ErrRequestNotFound)
	})
}
