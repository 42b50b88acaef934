package models

import "time"

// Selection is a captured highlight: the raw HTML fragment the client
// grabbed and the plain-text rendering stored alongside it.
type Selection struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"account_id"`
	PageURL   string    `db:"page_url" json:"page_url"`
	RawText   string    `db:"raw_text" json:"raw_text"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateSelectionRequest is the capture payload sent by the client.
type CreateSelectionRequest struct {
	PageURL string `json:"page_url" validate:"required,url"`
	RawText string `json:"raw_text" validate:"required,min=1"`
}
