package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// requestRepository implements repository.RequestRepository for PostgreSQL.
type requestRepository struct {
	db *DB
}

// NewRequestRepository creates a new PostgreSQL item request repository.
func NewRequestRepository(db *DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// Create persists a new item request and assigns its ID.
func (r *requestRepository) Create(ctx context.Context, req *domain.ItemRequest) error {
	query := `
		INSERT INTO requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		req.Description,
		req.RequesterID,
		req.Created,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	return nil
}

// GetByID retrieves an item request by ID.
func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	query := `SELECT id, description, requester_id, created FROM requests WHERE id = $1`

	req := &domain.ItemRequest{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.Description,
		&req.RequesterID,
		&req.Created,
	)
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
		WHERE requester_id = $1
		ORDER BY created DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
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
		WHERE requester_id <> $1
		ORDER BY created DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list other item requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// collectRequests drains rows into a slice of item requests.
func collectRequests(rows pgx.Rows) ([]*domain.ItemRequest, error) {
	var requests []*domain.ItemRequest
	for rows.Next() {
		req := &domain.ItemRequest{}
		err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created)
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
