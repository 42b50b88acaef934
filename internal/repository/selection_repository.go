package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/marginalia-api/internal/models"
)

// SelectionRepository provides database access for captured selections.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository creates a new instance of SelectionRepository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create stores a new selection row.
func (r *SelectionRepository) Create(ctx context.Context, s *models.Selection) error {
	const query = `INSERT INTO selections (id, account_id, page_url, raw_text, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.AccountID, s.PageURL, s.RawText, s.Text, s.CreatedAt); err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

// FindByID returns a selection by identifier, or nil when absent.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.Selection, error) {
	const query = `SELECT id, account_id, page_url, raw_text, text, created_at FROM selections WHERE id = $1 LIMIT 1`

	var s models.Selection
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find selection by id: %w", err)
	}
	return &s, nil
}

// Delete removes a selection owned by the given account. Reports whether
// a row was removed.
func (r *SelectionRepository) Delete(ctx context.Context, id, accountID string) (bool, error) {
	const query = `DELETE FROM selections WHERE id = $1 AND account_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return false, fmt.Errorf("delete selection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete selection: %w", err)
	}
	return affected > 0, nil
}
