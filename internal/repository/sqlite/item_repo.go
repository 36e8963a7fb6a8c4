package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// itemRepository implements repository.ItemRepository for SQLite.
type itemRepository struct {
	db *DB
}

// NewItemRepository creates a new SQLite item repository.
func NewItemRepository(db *DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// Create persists a new item and assigns its ID.
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		boolToInt(item.Available),
		item.OwnerID,
		nullableID(item.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	item.ID = id

	return nil
}

// GetByID retrieves an item by ID.
func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = ?
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
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
		SET name = ?, description = ?, available = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		boolToInt(item.Available),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// ListByOwner returns the items owned by ownerID, ordered by ID ascending.
func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64, page repository.Page) ([]*domain.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Size, page.Offset())
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
		WHERE available = 1
		  AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	pattern := "%" + strings.ToLower(text) + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, page.Size, page.Offset())
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

	placeholders := strings.Repeat("?,", len(requestIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id IN (%s)
		ORDER BY request_id
	`, placeholders)

	args := make([]interface{}, len(requestIDs))
	for i, id := range requestIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by request IDs: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanItem scans one item row.
func scanItem(row rowScanner) (*domain.Item, error) {
	item := &domain.Item{}
	var available int
	var requestID sql.NullInt64

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&available,
		&item.OwnerID,
		&requestID,
	)
	if err != nil {
		return nil, err
	}

	item.Available = available != 0
	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}

	return item, nil
}

// collectItems drains rows into a slice of items.
func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
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

// boolToInt converts a boolean to an integer (SQLite doesn't have native boolean).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullableID converts an optional ID into a driver value.
func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// Ensure itemRepository implements repository.ItemRepository.
var _ repository.ItemRepository = (*itemRepository)(nil)
