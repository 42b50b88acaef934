package models

import "time"

// Account is a registered user able to authenticate.
type Account struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Handle       string    `db:"handle" json:"handle"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Profile holds the public-facing attributes attached to an account.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"account_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateAccountRequest is the signup payload; it creates the account and
// its profile together.
type CreateAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Handle   string `json:"handle" validate:"required,min=4"`
	Name     string `json:"name" validate:"required,min=1"`
	Password string `json:"password" validate:"required"`
}

// AccountInfo exposes the safe account fields plus the profile name.
type AccountInfo struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}
