package models

import "time"

// Comment is attached to a selection. The optional highlight offsets
// anchor the comment to a span inside the selection's plain text.
type Comment struct {
	ID                 string    `db:"id" json:"id"`
	SelectionID        string    `db:"selection_id" json:"selection_id"`
	AccountID          string    `db:"account_id" json:"account_id"`
	Body               string    `db:"body" json:"body"`
	HighlightBeginning *int      `db:"highlight_beginning" json:"highlight_beginning,omitempty"`
	HighlightEnd       *int      `db:"highlight_end" json:"highlight_end,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// CreateCommentRequest is the payload for commenting on a selection.
type CreateCommentRequest struct {
	Body               string `json:"body" validate:"required,min=1"`
	HighlightBeginning *int   `json:"highlight_beginning" validate:"omitempty,min=1"`
	HighlightEnd       *int   `json:"highlight_end" validate:"omitempty,min=1"`
}
