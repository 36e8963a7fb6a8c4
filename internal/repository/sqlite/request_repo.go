package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// requestRepository implements repository.RequestRepository for SQLite.
type requestRepository struct {
	db *DB
}

// NewRequestRepository creates a new SQLite item request repository.
func NewRequestRepository(db *DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// Create persists a new item request and assigns its ID.
func (r *requestRepository) Create(ctx context.Context, req *domain.ItemRequest) error {
	query := `INSERT INTO requests (description, requester_id, created) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		req.Description,
		req.RequesterID,
		req.Created.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	req.ID = id

	return nil
}

// GetByID retrieves an item request by ID.
func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	query := `SELECT id, description, requester_id, created FROM requests WHERE id = ?`

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get item request by ID: %w", err)
	}

	return req, nil
}

// ListByRequester returns all requests authored by userID, newest-created first.
func (r *requestRepository) ListByRequester(ctx context.Context, userID int64) ([]*domain.ItemRequest, error) {
	query := `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id = ?
		ORDER BY created DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item requests by requester: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// ListOthers returns requests not authored by userID, newest-created first.
func (r *requestRepository) ListOthers(ctx context.Context, userID int64, page repository.Page) ([]*domain.ItemRequest, error) {
	query := `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id <> ?
		ORDER BY created DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list other item requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// scanRequest scans one item request row.
func scanRequest(row rowScanner) (*domain.ItemRequest, error) {
	req := &domain.ItemRequest{}
	var created string

	err := row.Scan(&req.ID, &req.Description, &req.RequesterID, &created)
	if err != nil {
		return nil, err
	}

	req.Created, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request created %q: %w", created, err)
	}
	return req, nil
}

// collectRequests drains rows into a slice of item requests.
func collectRequests(rows *sql.Rows) ([]*domain.ItemRequest, error) {
	var requests []*domain.ItemRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item requests: %w", err)
	}

	return requests, nil
}

// Ensure requestRepository implements repository.RequestRepository.
var _ repository.RequestRepository = (*requestRepository)(nil)
