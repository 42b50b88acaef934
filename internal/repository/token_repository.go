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

// TokenRepository persists revoked token records in PostgreSQL. The
// table carries a unique constraint on the token string, which is what
// makes double invalidation safe under concurrent logouts.
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new instance of TokenRepository.
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Insert stores a revocation record and returns its id. When the token
// was already revoked the existing record's id is returned instead, so
// callers never observe a duplicate-key failure.
func (r *TokenRepository) Insert(ctx context.Context, rec *models.RevokedToken) (string, error) {
	const insert = `INSERT INTO revoked_tokens (id, token, kind, account_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token) DO NOTHING
		RETURNING id`

	var id string
	err := r.db.GetContext(ctx, &id, insert, rec.ID, rec.Token, rec.Kind, rec.AccountID, rec.ExpiresAt, rec.CreatedAt)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("insert revoked token: %w", err)
	}

	// Conflict path: the row already exists.
	const find = `SELECT id FROM revoked_tokens WHERE token = $1 LIMIT 1`
	if err := r.db.GetContext(ctx, &id, find, rec.Token); err != nil {
		return "", fmt.Errorf("find conflicting revoked token: %w", err)
	}
	return id, nil
}

// FindByToken returns the revocation record for the exact encoded token
// string, or nil when the token was never invalidated.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*models.RevokedToken, error) {
	const query = `SELECT id, token, kind, account_id, expires_at, created_at FROM revoked_tokens WHERE token = $1 LIMIT 1`

	var rec models.RevokedToken
	if err := r.db.GetContext(ctx, &rec, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find revoked token: %w", err)
	}
	return &rec, nil
}

// DeleteExpired removes records whose underlying tokens expired before
// the given instant. An expired token fails verification on its own, so
// its revocation row is dead weight.
func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at < $1`

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired revoked tokens: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired revoked tokens: %w", err)
	}
	return deleted, nil
}
