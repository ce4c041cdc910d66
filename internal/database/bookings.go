package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.db.ExecContext(ctx, query,
		booking.ItemID, booking.BookerID, booking.Start.UTC(), booking.End.UTC(),
		booking.Status, now, now)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = ?`

	booking, err := scanBooking(db.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus переводит бронирование из fromStatus в toStatus одним
// условным UPDATE, чтобы гонка двух решений не затерла первое.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, fromStatus, toStatus string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.db.ExecContext(ctx, query, toStatus, time.Now().UTC(), id, fromStatus)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		if _, err := db.GetBooking(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}
	return nil
}

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, filter models.StateFilter, now time.Time, from, size int) ([]*models.Booking, error) {
	where, args := filterClause(filter, now)
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.booker_id = ?` + where +
		` ORDER BY b.end_date DESC LIMIT ? OFFSET ?`

	queryArgs := append([]any{bookerID}, args...)
	queryArgs = append(queryArgs, size, from)

	rows, err := db.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by booker: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, filter models.StateFilter, now time.Time, from, size int) ([]*models.Booking, error) {
	where, args := filterClause(filter, now)
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          JOIN items i ON i.id = b.item_id
	          WHERE i.owner_id = ?` + where +
		` ORDER BY b.end_date DESC LIMIT ? OFFSET ?`

	queryArgs := append([]any{ownerID}, args...)
	queryArgs = append(queryArgs, size, from)

	rows, err := db.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by owner: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func filterClause(filter models.StateFilter, now time.Time) (string, []any) {
	ts := now.UTC()
	switch filter {
	case models.FilterCurrent:
		return ` AND b.start_date <= ? AND b.end_date >= ?`, []any{ts, ts}
	case models.FilterPast:
		return ` AND b.end_date < ?`, []any{ts}
	case models.FilterFuture:
		return ` AND b.start_date > ?`, []any{ts}
	case models.FilterWaiting:
		return ` AND b.status = ?`, []any{models.StatusWaiting}
	case models.FilterRejected:
		return ` AND b.status = ?`, []any{models.StatusRejected}
	default:
		return ``, nil
	}
}

// HasFinishedBooking отвечает, есть ли у пользователя бронирование вещи,
// закончившееся к моменту now. Используется как допуск к отзывам.
func (db *DB) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE booker_id = ? AND item_id = ? AND end_date < ?`

	var count int
	err := db.db.QueryRowContext(ctx, query, bookerID, itemID, now.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count > 0, nil
}

// GetLastBooking возвращает последнее начавшееся бронирование вещи
// или nil, если таких нет. Отклоненные не учитываются.
func (db *DB) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          WHERE b.item_id = ? AND b.start_date <= ? AND b.status != ?
	          ORDER BY b.end_date DESC LIMIT 1`

	booking, err := scanBooking(db.db.QueryRowContext(ctx, query, itemID, now.UTC(), models.StatusRejected))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

// GetNextBooking возвращает ближайшее будущее бронирование вещи или nil.
func (db *DB) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          WHERE b.item_id = ? AND b.start_date > ? AND b.status != ?
	          ORDER BY b.start_date ASC LIMIT 1`

	booking, err := scanBooking(db.db.QueryRowContext(ctx, query, itemID, now.UTC(), models.StatusRejected))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

func (db *DB) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          WHERE b.start_date <= ? AND b.end_date >= ?
	          ORDER BY b.end_date DESC`

	rows, err := db.db.QueryContext(ctx, query, end.UTC(), start.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date range: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]*models.Booking, error) {
	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
