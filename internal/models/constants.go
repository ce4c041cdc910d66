package models

import (
	"fmt"
	"strings"
)

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELED"
)

// StateFilter выбирает временной/статусный срез бронирований пользователя.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter разбирает токен фильтра без учета регистра.
// Пустой токен трактуется как ALL.
func ParseStateFilter(raw string) (StateFilter, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return FilterAll, nil
	}

	switch StateFilter(token) {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return StateFilter(token), nil
	}
	return "", fmt.Errorf("unknown state filter: %s", raw)
}

const (
	// DefaultPageSize размер страницы списков по умолчанию
	DefaultPageSize = 20

	// WorkerQueueSize размер очереди воркера уведомлений
	WorkerQueueSize = 1000

	// RateLimitRequests количество запросов в окне на пользователя
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты запросов, секунд
	RateLimitWindow = 60
)
