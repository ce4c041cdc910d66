package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// RequestService управляет запросами вещей.
type RequestService struct {
	users    domain.UserDirectory
	requests domain.RequestStore
	logger   *zerolog.Logger
}

func NewRequestService(users domain.UserDirectory, requests domain.RequestStore, logger *zerolog.Logger) *RequestService {
	return &RequestService{users: users, requests: requests, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, validationError("request description is required")
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     time.Now().UTC(),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) ListOwn(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.GetRequestsByRequestor(ctx, userID)
}

func (s *RequestService) ListAll(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.GetRequestsOfOthers(ctx, userID, from, size)
}

func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.GetRequest(ctx, requestID)
}
