package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/marginalia-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func sampleRecord() *models.RevokedToken {
	return &models.RevokedToken{
		ID:        "rec-1",
		Token:     "encoded.jwt.token",
		Kind:      models.TokenKindRefresh,
		AccountID: "A1",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		CreatedAt: time.Now().UTC(),
	}
}

func TestTokenRepositoryInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	rec := sampleRecord()

	mock.ExpectQuery(`INSERT INTO revoked_tokens`).
		WithArgs(rec.ID, rec.Token, rec.Kind, rec.AccountID, rec.ExpiresAt, rec.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(rec.ID))

	id, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepositoryInsertConflictReturnsExistingID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	rec := sampleRecord()

	// ON CONFLICT DO NOTHING yields zero rows; the existing id is fetched.
	mock.ExpectQuery(`INSERT INTO revoked_tokens`).
		WithArgs(rec.ID, rec.Token, rec.Kind, rec.AccountID, rec.ExpiresAt, rec.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM revoked_tokens WHERE token`).
		WithArgs(rec.Token).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("earlier-rec"))

	id, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "earlier-rec", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepositoryInsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	rec := sampleRecord()

	mock.ExpectQuery(`INSERT INTO revoked_tokens`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Insert(context.Background(), rec)
	assert.Error(t, err)
}

func TestTokenRepositoryFindByToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	rec := sampleRecord()

	rows := sqlmock.NewRows([]string{"id", "token", "kind", "account_id", "expires_at", "created_at"}).
		AddRow(rec.ID, rec.Token, rec.Kind, rec.AccountID, rec.ExpiresAt, rec.CreatedAt)
	mock.ExpectQuery(`SELECT id, token, kind, account_id, expires_at, created_at FROM revoked_tokens`).
		WithArgs(rec.Token).
		WillReturnRows(rows)

	found, err := repo.FindByToken(context.Background(), rec.Token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
	assert.Equal(t, rec.AccountID, found.AccountID)
}

func TestTokenRepositoryFindByTokenMiss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectQuery(`SELECT id, token, kind, account_id, expires_at, created_at FROM revoked_tokens`).
		WithArgs("never-revoked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "kind", "account_id", "expires_at", "created_at"}))

	found, err := repo.FindByToken(context.Background(), "never-revoked")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTokenRepositoryDeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	cutoff := time.Now().UTC()

	mock.ExpectExec(`DELETE FROM revoked_tokens WHERE expires_at`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
