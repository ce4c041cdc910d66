package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — некорректный ввод: даты, пустой текст, пагинация.
	ErrValidation = errors.New("validation error")

	// ErrItemNotAvailable — вещь закрыта для бронирования.
	ErrItemNotAvailable = errors.New("item is not available")

	// ErrAccessDenied — у пользователя нет прав на действие.
	ErrAccessDenied = errors.New("access denied")

	// ErrApprovalConflict — по бронированию уже принято решение.
	ErrApprovalConflict = errors.New("booking already decided")

	// ErrUnsupportedFilter — неизвестный токен фильтра состояний.
	ErrUnsupportedFilter = errors.New("unsupported state filter")

	// ErrEmailTaken — email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already in use")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
