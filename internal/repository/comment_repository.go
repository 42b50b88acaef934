package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/marginalia-api/internal/models"
)

// CommentRepository provides database access for comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create stores a new comment row.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	const query = `INSERT INTO comments (id, selection_id, account_id, body, highlight_beginning, highlight_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.ExecContext(ctx, query, c.ID, c.SelectionID, c.AccountID, c.Body, c.HighlightBeginning, c.HighlightEnd, c.CreatedAt); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListBySelection returns the comments on a selection, oldest first.
func (r *CommentRepository) ListBySelection(ctx context.Context, selectionID string) ([]models.Comment, error) {
	const query = `SELECT id, selection_id, account_id, body, highlight_beginning, highlight_end, created_at
		FROM comments WHERE selection_id = $1 ORDER BY created_at ASC`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, selectionID); err != nil {
		return nil, fmt.Errorf("list comments by selection: %w", err)
	}
	return comments, nil
}

// Delete removes a comment owned by the given account. Reports whether a
// row was removed.
func (r *CommentRepository) Delete(ctx context.Context, id, accountID string) (bool, error) {
	const query = `DELETE FROM comments WHERE id = $1 AND account_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return affected > 0, nil
}
