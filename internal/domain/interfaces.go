package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// UserDirectory — справочник пользователей.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// ItemCatalog — каталог вещей.
type ItemCatalog interface {
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
}

// BookingStore — хранилище бронирований с фильтрованными выборками.
// Выборки всегда отсортированы по дате окончания по убыванию.
type BookingStore interface {
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// UpdateBookingStatus переводит бронирование из fromStatus в toStatus.
	// Возвращает ErrStatusConflict, если текущий статус уже другой.
	UpdateBookingStatus(ctx context.Context, id int64, fromStatus, toStatus string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, filter models.StateFilter, now time.Time, from, size int) ([]*models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, filter models.StateFilter, now time.Time, from, size int) ([]*models.Booking, error)
	// HasFinishedBooking отвечает, завершал ли пользователь бронирование вещи к моменту now.
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
}

// CommentStore — хранилище отзывов.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

// RequestStore — хранилище запросов вещей.
type RequestStore interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
	GetRequestsOfOthers(ctx context.Context, requestorID int64, from, size int) ([]*models.ItemRequest, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Notifier доставляет уведомление владельцу вещи.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// NotifyWorker ставит уведомление в очередь на асинхронную доставку.
type NotifyWorker interface {
	Enqueue(ctx context.Context, chatID int64, text string) error
}

// RateLimiter отвечает, не превысил ли пользователь лимит запросов в окне.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type BookingService interface {
	Create(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*models.Booking, error)
	SetApproval(ctx context.Context, actingUserID, bookingID int64, approved bool) (*models.Booking, error)
	Get(ctx context.Context, requesterID, bookingID int64) (*models.Booking, error)
	ListForBooker(ctx context.Context, userID int64, filter string, from, size int) ([]*models.Booking, error)
	ListForOwner(ctx context.Context, userID int64, filter string, from, size int) ([]*models.Booking, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, userID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	Get(ctx context.Context, requesterID, itemID int64) (*models.ItemDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.ItemDetails, error)
	Search(ctx context.Context, text string, from, size int) ([]*models.Item, error)
	CreateComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
}

type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type RequestService interface {
	Create(ctx context.Context, userID int64, description string) (*models.ItemRequest, error)
	ListOwn(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	ListAll(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error)
	Get(ctx context.Context, userID, requestID int64) (*models.ItemRequest, error)
}
