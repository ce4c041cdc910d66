package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		request.Description, request.RequestorID, request.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`

	var r models.ItemRequest
	err := db.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Description, &r.RequestorID, &r.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &r, nil
}

func (db *DB) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
	          WHERE requestor_id = ? ORDER BY created DESC`

	rows, err := db.db.QueryContext(ctx, query, requestorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests by requestor: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// GetRequestsOfOthers возвращает чужие запросы, новые первыми.
func (db *DB) GetRequestsOfOthers(ctx context.Context, requestorID int64, from, size int) ([]*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
	          WHERE requestor_id != ? ORDER BY created DESC LIMIT ? OFFSET ?`

	rows, err := db.db.QueryContext(ctx, query, requestorID, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests of others: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]*models.ItemRequest, error) {
	requests := []*models.ItemRequest{}
	for rows.Next() {
		r := &models.ItemRequest{}
		if err := rows.Scan(&r.ID, &r.Description, &r.RequestorID, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
