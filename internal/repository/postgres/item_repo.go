package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// itemRepository implements repository.ItemRepository for PostgreSQL.
type itemRepository struct {
	db *DB
}

// NewItemRepository creates a new PostgreSQL item repository.
func NewItemRepository(db *DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// Create persists a new item and assigns its ID.
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.RequestID,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID.
func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
	`

	item := &domain.Item{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.RequestID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by ID: %w", err)
	}

	return item, nil
}

// Update overwrites an existing item.
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// ListByOwner returns the items owned by ownerID, ordered by ID ascending.
func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64, page repository.Page) ([]*domain.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Search returns available items whose name or description contains text,
// case-insensitively.
func (r *itemRepository) Search(ctx context.Context, text string, page repository.Page) ([]*domain.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, text, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListByRequestIDs returns all items fulfilling any of the given requests,
// ordered by request ID.
func (r *itemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY request_id
	`

	rows, err := r.db.Pool.Query(ctx, query, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by request IDs: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// collectItems drains rows into a slice of items.
func collectItems(rows pgx.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item := &domain.Item{}
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Available,
			&item.OwnerID,
			&item.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Ensure itemRepository implements repository.ItemRepository.
var _ repository.ItemRepository = (*itemRepository)(nil)
