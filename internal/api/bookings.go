package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"
)

type createBookingRequest struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var body createBookingRequest
	if err := decodeBody(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}

	booking, err := s.bookings.Create(r.Context(), userID, body.ItemID, body.Start, body.End)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var approved bool
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("approved"))) {
	case "true":
		approved = true
	case "false":
		approved = false
	default:
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.SetApproval(r.Context(), userID, bookingID, approved)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.IncBookingDecision(booking.Status)
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	booking, err := s.bookings.Get(r.Context(), userID, bookingID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForOwner)
}

func (s *HTTPServer) listBookings(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID int64, filter string, from, size int) ([]*models.Booking, error),
) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	from, size, err := s.pageParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	bookings, err := list(r.Context(), userID, r.URL.Query().Get("state"), from, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}
