package models

import "time"

// TokenKind distinguishes the two bearer credential types.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// RevokedToken is a persisted record marking an encoded token string as
// unusable before its natural expiry. Rows are append-only; the unique
// constraint on token makes repeated invalidation idempotent. Rows may be
// garbage-collected once expires_at has passed.
type RevokedToken struct {
	ID        string    `db:"id" json:"id"`
	Token     string    `db:"token" json:"token"`
	Kind      TokenKind `db:"kind" json:"kind"`
	AccountID string    `db:"account_id" json:"account_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
