package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// commentRepository implements repository.CommentRepository for SQLite.
type commentRepository struct {
	db *DB
}

// NewCommentRepository creates a new SQLite comment repository.
func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment and assigns its ID.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `INSERT INTO comments (text, author_id, item_id, created) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		comment.Text,
		comment.AuthorID,
		comment.ItemID,
		formatTime(comment.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	comment.ID = id

	return nil
}

// ListByItem returns all comments on the item.
func (r *commentRepository) ListByItem(ctx context.Context, itemID int64) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, u.name, c.item_id, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ?
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by item: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// ListByItems returns all comments on any of the given items.
func (r *commentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`
		SELECT c.id, c.text, c.author_id, u.name, c.item_id, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id IN (%s)
		ORDER BY c.id
	`, placeholders)

	args := make([]interface{}, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by items: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// scanComment scans one comment row.
func scanComment(row rowScanner) (*domain.Comment, error) {
	comment := &domain.Comment{}
	var created string

	err := row.Scan(
		&comment.ID,
		&comment.Text,
		&comment.AuthorID,
		&comment.AuthorName,
		&comment.ItemID,
		&created,
	)
	if err != nil {
		return nil, err
	}

	comment.Created, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comment created %q: %w", created, err)
	}
	return comment, nil
}

// collectComments drains rows into a slice of comments.
func collectComments(rows *sql.Rows) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Ensure commentRepository implements repository.CommentRepository.
var _ repository.CommentRepository = (*commentRepository)(nil)
