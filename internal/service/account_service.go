package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/internal/models"
	appErrors "github.com/noah-isme/marginalia-api/pkg/errors"
)

type accountStore interface {
	Create(ctx context.Context, acc *models.Account) error
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type profileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByAccountID(ctx context.Context, accountID string) (*models.Profile, error)
	DeleteByAccountID(ctx context.Context, accountID string) error
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
}

// AccountConfig holds signup policy knobs.
type AccountConfig struct {
	MinPasswordLength int
}

// AccountService provides account and profile use cases.
type AccountService struct {
	accounts  accountStore
	profiles  profileStore
	hasher    passwordHasher
	validator *validator.Validate
	logger    *zap.Logger
	config    AccountConfig
}

// NewAccountService constructs an AccountService instance.
func NewAccountService(accounts accountStore, profiles profileStore, hasher passwordHasher, validate *validator.Validate, logger *zap.Logger, config AccountConfig) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.MinPasswordLength <= 0 {
		config.MinPasswordLength = 8
	}
	return &AccountService{accounts: accounts, profiles: profiles, hasher: hasher, validator: validate, logger: logger, config: config}
}

// Create registers a new account together with its profile and returns
// the account id.
func (s *AccountService) Create(ctx context.Context, req models.CreateAccountRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}
	if len(req.Password) < s.config.MinPasswordLength {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("password must be at least %d characters", s.config.MinPasswordLength))
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Handle:       req.Handle,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "could not create account")
	}

	profile := &models.Profile{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Name:      req.Name,
		CreatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// The account row exists without its profile; surface the failure
		// so the client retries instead of ending up half-registered.
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not create profile")
	}

	return account.ID, nil
}

// Retrieve returns the safe account fields plus the profile name.
func (s *AccountService) Retrieve(ctx context.Context, accountID string) (*models.AccountInfo, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}
	if account == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
	}

	info := &models.AccountInfo{ID: account.ID, Email: account.Email, Handle: account.Handle}

	profile, err := s.profiles.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch profile")
	}
	if profile != nil {
		info.Name = profile.Name
	}

	return info, nil
}

// Remove deletes an account and its profile.
func (s *AccountService) Remove(ctx context.Context, accountID string) error {
	if err := s.profiles.DeleteByAccountID(ctx, accountID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not remove profile")
	}

	removed, err := s.accounts.Delete(ctx, accountID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not remove account")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "account not found")
	}
	return nil
}
