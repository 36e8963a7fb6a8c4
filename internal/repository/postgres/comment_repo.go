package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// commentRepository implements repository.CommentRepository for PostgreSQL.
type commentRepository struct {
	db *DB
}

// NewCommentRepository creates a new PostgreSQL comment repository.
func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment and assigns its ID.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (text, author_id, item_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.Text,
		comment.AuthorID,
		comment.ItemID,
		comment.Created,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByItem returns all comments on the item.
func (r *commentRepository) ListByItem(ctx context.Context, itemID int64) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, u.name, c.item_id, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Pool.Query(ctx, query, itemID)
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

	query := `
		SELECT c.id, c.text, c.author_id, u.name, c.item_id, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ANY($1)
		ORDER BY c.id
	`

	rows, err := r.db.Pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by items: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// collectComments drains rows into a slice of comments.
func collectComments(rows pgx.Rows) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for rows.Next() {
		comment := &domain.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.ItemID,
			&comment.Created,
		)
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
