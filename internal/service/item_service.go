package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// ItemService управляет каталогом вещей и отзывами.
type ItemService struct {
	users    domain.UserDirectory
	items    domain.ItemCatalog
	bookings domain.BookingStore
	comments domain.CommentStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(users domain.UserDirectory, items domain.ItemCatalog, bookings domain.BookingStore, comments domain.CommentStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		users:    users,
		items:    items,
		bookings: bookings,
		comments: comments,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, validationError("item name is required")
	}
	if strings.TrimSpace(item.Description) == "" {
		return nil, validationError("item description is required")
	}

	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	item.OwnerID = ownerID
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update применяет частичное обновление. Менять вещь может только владелец.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != userID {
		return nil, ErrAccessDenied
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationError("item name must not be blank")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, validationError("item description must not be blank")
		}
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get возвращает вещь с отзывами; владельцу дополнительно видны
// последнее и ближайшее бронирования.
func (s *ItemService) Get(ctx context.Context, requesterID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, requesterID, item)
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.ItemDetails, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.GetItemsByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}

	details := make([]*models.ItemDetails, 0, len(items))
	for _, item := range items {
		d, err := s.buildDetails(ctx, ownerID, item)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	return s.items.SearchItems(ctx, text, from, size)
}

// CreateComment пропускает отзыв только от пользователя, у которого есть
// завершившееся бронирование этой вещи.
func (s *ItemService) CreateComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationError("comment text must not be blank")
	}

	author, err := s.users.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	finished, err := s.bookings.HasFinishedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, validationError("user has not completed a booking of this item")
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now.UTC(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{
			CommentID:  comment.ID,
			ItemID:     item.ID,
			AuthorID:   authorID,
			AuthorName: author.Name,
			Text:       text,
		}
		if err := s.eventBus.PublishJSON(events.EventCommentCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	return comment, nil
}

func (s *ItemService) buildDetails(ctx context.Context, requesterID int64, item *models.Item) (*models.ItemDetails, error) {
	comments, err := s.comments.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	details := &models.ItemDetails{Item: *item}
	for _, c := range comments {
		details.Comments = append(details.Comments, *c)
	}

	// Сроки бронирований показываем только владельцу.
	if requesterID == item.OwnerID {
		now := time.Now()
		if details.LastBooking, err = s.bookings.GetLastBooking(ctx, item.ID, now); err != nil {
			return nil, err
		}
		if details.NextBooking, err = s.bookings.GetNextBooking(ctx, item.ID, now); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func validatePage(from, size int) error {
	if from < 0 {
		return validationError("from must be >= 0, got %d", from)
	}
	if size <= 0 {
		return validationError("size must be > 0, got %d", size)
	}
	return nil
}
