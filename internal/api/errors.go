package api

import (
	"errors"
	"net/http"

	"shareit/internal/database"
	"shareit/internal/service"
)

// statusForError переводит доменные ошибки в HTTP-статусы.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnsupportedFilter),
		errors.Is(err, service.ErrItemNotAvailable):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrApprovalConflict),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, database.ErrStatusConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeError(w, status, message)
}
