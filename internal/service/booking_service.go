package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService владеет жизненным циклом бронирования: валидация при
// создании, переход WAITING -> APPROVED/REJECTED и выборки с контролем доступа.
type BookingService struct {
	users    domain.UserDirectory
	items    domain.ItemCatalog
	bookings domain.BookingStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(users domain.UserDirectory, items domain.ItemCatalog, bookings domain.BookingStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		users:    users,
		items:    items,
		bookings: bookings,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create создает бронирование в статусе WAITING.
// Владелец не может бронировать собственную вещь.
func (s *BookingService) Create(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*models.Booking, error) {
	if err := validateBookingDates(start, end, time.Now()); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == requesterID {
		// Владельцу его вещь для бронирования "не видна".
		return nil, database.ErrBookingNotFound
	}

	if !item.Available {
		return nil, ErrItemNotAvailable
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: requesterID,
		Start:    start.UTC(),
		End:      end.UTC(),
		Status:   models.StatusWaiting,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking, item)
	return booking, nil
}

// SetApproval переводит бронирование из WAITING в APPROVED или REJECTED.
// Решение принимает только владелец вещи, и только один раз.
func (s *BookingService) SetApproval(ctx context.Context, actingUserID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return nil, database.ErrBookingNotFound
		}
		return nil, err
	}

	if booking.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: status is %s", ErrApprovalConflict, booking.Status)
	}

	if item.OwnerID != actingUserID {
		return nil, ErrAccessDenied
	}

	toStatus := models.StatusApproved
	eventType := events.EventBookingApproved
	if !approved {
		toStatus = models.StatusRejected
		eventType = events.EventBookingRejected
	}

	err = s.bookings.UpdateBookingStatus(ctx, bookingID, models.StatusWaiting, toStatus)
	if err != nil {
		if errors.Is(err, database.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: concurrent decision", ErrApprovalConflict)
		}
		return nil, err
	}

	booking.Status = toStatus
	s.publishEvent(eventType, booking, item)
	return booking, nil
}

// Get возвращает бронирование; доступ есть только у автора брони и владельца вещи.
func (s *BookingService) Get(ctx context.Context, requesterID, bookingID int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return nil, database.ErrBookingNotFound
		}
		return nil, err
	}

	if requesterID != booking.BookerID && requesterID != item.OwnerID {
		return nil, ErrAccessDenied
	}
	return booking, nil
}

// ListForBooker возвращает бронирования пользователя как заказчика,
// отфильтрованные по состоянию и отсортированные по дате окончания по убыванию.
func (s *BookingService) ListForBooker(ctx context.Context, userID int64, filter string, from, size int) ([]*models.Booking, error) {
	stateFilter, err := s.checkListArgs(ctx, userID, filter, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.GetBookingsByBooker(ctx, userID, stateFilter, time.Now(), from, size)
}

// ListForOwner возвращает бронирования вещей, которыми пользователь владеет.
func (s *BookingService) ListForOwner(ctx context.Context, userID int64, filter string, from, size int) ([]*models.Booking, error) {
	stateFilter, err := s.checkListArgs(ctx, userID, filter, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.GetBookingsByOwner(ctx, userID, stateFilter, time.Now(), from, size)
}

func (s *BookingService) checkListArgs(ctx context.Context, userID int64, filter string, from, size int) (models.StateFilter, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return "", err
	}

	stateFilter, err := models.ParseStateFilter(filter)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFilter, filter)
	}

	if from < 0 {
		return "", validationError("from must be >= 0, got %d", from)
	}
	if size <= 0 {
		return "", validationError("size must be > 0, got %d", size)
	}
	return stateFilter, nil
}

func validateBookingDates(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return validationError("start and end are required")
	}
	if !end.After(start) {
		return validationError("end must be after start")
	}
	if !start.After(now) {
		return validationError("start must be in the future")
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, item *models.Item) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    item.ID,
		ItemName:  item.Name,
		BookerID:  booking.BookerID,
		OwnerID:   item.OwnerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
