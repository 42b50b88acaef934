package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/internal/models"
	appErrors "github.com/noah-isme/marginalia-api/pkg/errors"
)

type commentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	ListBySelection(ctx context.Context, selectionID string) ([]models.Comment, error)
	Delete(ctx context.Context, id, accountID string) (bool, error)
}

type selectionFinder interface {
	Retrieve(ctx context.Context, id string) (*models.Selection, error)
}

// CommentService provides use cases around comments on selections.
type CommentService struct {
	comments   commentStore
	selections selectionFinder
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCommentService constructs a CommentService instance.
func NewCommentService(comments commentStore, selections selectionFinder, validate *validator.Validate, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CommentService{comments: comments, selections: selections, validator: validate, logger: logger}
}

// Create attaches a comment to an existing selection and returns the
// comment id. Fails with not-found when the selection does not exist.
func (s *CommentService) Create(ctx context.Context, selectionID, accountID string, req models.CreateCommentRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	if _, err := s.selections.Retrieve(ctx, selectionID); err != nil {
		return "", err
	}

	comment := &models.Comment{
		ID:                 uuid.NewString(),
		SelectionID:        selectionID,
		AccountID:          accountID,
		Body:               req.Body,
		HighlightBeginning: req.HighlightBeginning,
		HighlightEnd:       req.HighlightEnd,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not create comment")
	}
	return comment.ID, nil
}

// ListBySelection returns the comments on a selection, oldest first.
func (s *CommentService) ListBySelection(ctx context.Context, selectionID string) ([]models.Comment, error) {
	if _, err := s.selections.Retrieve(ctx, selectionID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListBySelection(ctx, selectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list comments")
	}
	return comments, nil
}

// Remove deletes a comment owned by the given account.
func (s *CommentService) Remove(ctx context.Context, id, accountID string) error {
	removed, err := s.comments.Delete(ctx, id, accountID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not remove comment")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "comment not found")
	}
	return nil
}
