package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/service"

	"github.com/rs/zerolog"
)

const headerUserID = "X-Sharer-User-Id"

// HTTPServer — основной HTTP API сервиса.
type HTTPServer struct {
	cfg      config.ServerConfig
	bookings domain.BookingService
	items    domain.ItemService
	users    domain.UserService
	requests domain.RequestService
	exporter *export.Exporter
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	bookings domain.BookingService,
	items domain.ItemService,
	users domain.UserService,
	requests domain.RequestService,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		items:    items,
		users:    users,
		requests: requests,
		exporter: exporter,
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("PATCH /bookings/{bookingId}", srv.handleApproveBooking)
	mux.HandleFunc("GET /bookings/owner", srv.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/{bookingId}", srv.handleGetBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookings)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("PATCH /items/{itemId}", srv.handleUpdateItem)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{itemId}", srv.handleGetItem)
	mux.HandleFunc("GET /items", srv.handleListItems)
	mux.HandleFunc("POST /items/{itemId}/comment", srv.handleCreateComment)

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("PATCH /users/{userId}", srv.handleUpdateUser)
	mux.HandleFunc("GET /users/{userId}", srv.handleGetUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("DELETE /users/{userId}", srv.handleDeleteUser)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests/all", srv.handleListAllRequests)
	mux.HandleFunc("GET /requests/{requestId}", srv.handleGetRequest)
	mux.HandleFunc("GET /requests", srv.handleListOwnRequests)

	mux.HandleFunc("GET /admin/export", srv.handleExportBookings)

	handler := requestIDMiddleware(loggingMiddleware(logger, mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler возвращает корневой обработчик (для httptest).
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// userIDFromHeader читает X-Sharer-User-Id. Без него запрос не обслуживается.
func userIDFromHeader(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(headerUserID))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s header is required", service.ErrValidation, headerUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s header must be a positive integer", service.ErrValidation, headerUserID)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrValidation, name)
	}
	return id, nil
}

// pageParams читает from/size из query. По умолчанию from=0 и размер страницы
// из конфигурации.
func (s *HTTPServer) pageParams(r *http.Request) (int, int, error) {
	from := 0
	size := s.cfg.DefaultPageSize

	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: from must be an integer", service.ErrValidation)
		}
		from = v
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: size must be an integer", service.ErrValidation)
		}
		size = v
	}
	return from, size, nil
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", service.ErrValidation)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
