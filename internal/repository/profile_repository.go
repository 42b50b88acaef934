package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/marginalia-api/internal/models"
)

// ProfileRepository provides database access for profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create stores a new profile row.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	const query = `INSERT INTO profiles (id, account_id, name, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.AccountID, p.Name, p.CreatedAt); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// FindByAccountID returns the profile for an account, or nil when absent.
func (r *ProfileRepository) FindByAccountID(ctx context.Context, accountID string) (*models.Profile, error) {
	const query = `SELECT id, account_id, name, created_at FROM profiles WHERE account_id = $1 LIMIT 1`

	var p models.Profile
	if err := r.db.GetContext(ctx, &p, query, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find profile by account id: %w", err)
	}
	return &p, nil
}

// DeleteByAccountID removes the profile attached to an account.
func (r *ProfileRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	const query = `DELETE FROM profiles WHERE account_id = $1`

	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("delete profile by account id: %w", err)
	}
	return nil
}
