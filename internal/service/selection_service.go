package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/internal/models"
	appErrors "github.com/noah-isme/marginalia-api/pkg/errors"
	"github.com/noah-isme/marginalia-api/pkg/textparse"
)

type selectionStore interface {
	Create(ctx context.Context, s *models.Selection) error
	FindByID(ctx context.Context, id string) (*models.Selection, error)
	Delete(ctx context.Context, id, accountID string) (bool, error)
}

// SelectionService provides use cases around captured highlights.
type SelectionService struct {
	selections selectionStore
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSelectionService constructs a SelectionService instance.
func NewSelectionService(selections selectionStore, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SelectionService{selections: selections, validator: validate, logger: logger}
}

// Create stores a captured highlight, flattening the raw HTML fragment
// to plain text first, and returns the selection id.
func (s *SelectionService) Create(ctx context.Context, accountID string, req models.CreateSelectionRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	selection := &models.Selection{
		ID:        uuid.NewString(),
		AccountID: accountID,
		PageURL:   req.PageURL,
		RawText:   req.RawText,
		Text:      textparse.HTMLToPlainText(req.RawText),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.selections.Create(ctx, selection); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not create selection")
	}
	return selection.ID, nil
}

// Retrieve returns a selection by id.
func (s *SelectionService) Retrieve(ctx context.Context, id string) (*models.Selection, error) {
	selection, err := s.selections.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch selection")
	}
	if selection == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}
	return selection, nil
}

// Remove deletes a selection owned by the given account.
func (s *SelectionService) Remove(ctx context.Context, id, accountID string) error {
	removed, err := s.selections.Delete(ctx, id, accountID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not remove selection")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}
	return nil
}
