package database

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	// ErrStatusConflict возвращается, когда условный перевод статуса
	// не нашел строку в ожидаемом исходном статусе.
	ErrStatusConflict = errors.New("booking status conflict")
)
