package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/marginalia-api/internal/models"
)

// AccountRepository provides database access for accounts.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create stores a new account row.
func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) error {
	const query = `INSERT INTO accounts (id, email, handle, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query, acc.ID, acc.Email, acc.Handle, acc.PasswordHash, acc.CreatedAt, acc.UpdatedAt); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// FindByID returns an account by identifier, or nil when absent.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	const query = `SELECT id, email, handle, password_hash, created_at, updated_at FROM accounts WHERE id = $1 LIMIT 1`

	var acc models.Account
	if err := r.db.GetContext(ctx, &acc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &acc, nil
}

// FindByLogin looks an account up by handle or email, the two
// identifiers the login form accepts.
func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*models.Account, error) {
	const query = `SELECT id, email, handle, password_hash, created_at, updated_at FROM accounts WHERE email = $1 OR handle = $1 LIMIT 1`

	var acc models.Account
	if err := r.db.GetContext(ctx, &acc, query, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account by login: %w", err)
	}
	return &acc, nil
}

// Delete removes an account. Reports whether a row was removed.
func (r *AccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM accounts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return affected > 0, nil
}

// Touch bumps the updated_at column.
func (r *AccountRepository) Touch(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE accounts SET updated_at = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("touch account: %w", err)
	}
	return nil
}
