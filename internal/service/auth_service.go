package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/marginalia-api/internal/models"
	"github.com/noah-isme/marginalia-api/internal/token"
	appErrors "github.com/noah-isme/marginalia-api/pkg/errors"
)

type authRevocationStore interface {
	Insert(ctx context.Context, rec *models.RevokedToken) (string, error)
	FindByToken(ctx context.Context, tok string) (*models.RevokedToken, error)
}

type credentialStore interface {
	FindByLogin(ctx context.Context, login string) (*models.Account, error)
	Touch(ctx context.Context, id string, ts time.Time) error
}

// AuthConfig defines configuration for token issuance and password hashing.
type AuthConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
}

// AuthService issues, verifies and invalidates access/refresh token
// pairs. Tokens are stateless until revoked: issuance never writes to
// storage, invalidation appends to the revocation store.
type AuthService struct {
	store     authRevocationStore
	accounts  credentialStore
	access    *token.Codec
	refresh   *token.Codec
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(store authRevocationStore, accounts credentialStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.BcryptCost <= 0 {
		config.BcryptCost = 12
	}
	return &AuthService{
		store:     store,
		accounts:  accounts,
		access:    token.NewCodec(config.AccessSecret),
		refresh:   token.NewCodec(config.RefreshSecret),
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
	}
}

// Login checks the submitted credentials against the credential store and
// issues a fresh token pair on success.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenPair, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	account, err := s.accounts.FindByLogin(ctx, req.Login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}
	if account == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if !s.CheckPassword(req.Password, account.PasswordHash) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	// Best-effort last-seen bump; a failure never blocks the login.
	if err := s.accounts.Touch(ctx, account.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to touch account", zap.Error(err))
	}

	return s.IssueTokenPair(account.ID)
}

// IssueTokenPair mints a matched access/refresh pair for an account.
func (s *AuthService) IssueTokenPair(accountID string) (*models.TokenPair, error) {
	accessToken, err := s.IssueAccessToken(accountID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(accountID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// IssueAccessToken mints a short-lived access token.
func (s *AuthService) IssueAccessToken(accountID string) (string, error) {
	signed, err := s.access.Issue(accountID, s.config.AccessTokenTTL)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	return signed, nil
}

// IssueRefreshToken mints a long-lived refresh token.
func (s *AuthService) IssueRefreshToken(accountID string) (string, error) {
	signed, err := s.refresh.Issue(accountID, s.config.RefreshTokenTTL)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create refresh token")
	}
	return signed, nil
}

// VerifyAccessToken returns the claims of a valid access token, or nil
// for any structural, signature or expiry failure. An invalid credential
// is a normal control-flow branch for callers, never an error.
func (s *AuthService) VerifyAccessToken(tok string) *token.Claims {
	claims := s.access.Verify(tok)
	s.metrics.RecordTokenVerification(string(models.TokenKindAccess), claims != nil)
	return claims
}

// VerifyRefreshToken returns the claims of a valid refresh token, or nil.
func (s *AuthService) VerifyRefreshToken(tok string) *token.Claims {
	claims := s.refresh.Verify(tok)
	s.metrics.RecordTokenVerification(string(models.TokenKindRefresh), claims != nil)
	return claims
}

// InvalidateAccessToken records an access token as revoked and returns
// the revocation record id.
func (s *AuthService) InvalidateAccessToken(ctx context.Context, tok string) (string, error) {
	return s.invalidate(ctx, tok, models.TokenKindAccess, s.access)
}

// InvalidateRefreshToken records a refresh token as revoked and returns
// the revocation record id.
func (s *AuthService) InvalidateRefreshToken(ctx context.Context, tok string) (string, error) {
	return s.invalidate(ctx, tok, models.TokenKindRefresh, s.refresh)
}

// invalidate decodes the token without re-verifying signature or expiry:
// a token being revoked may already be past its expiry, but its claims
// still have to be readable to fill the record. Only an unparseable
// string fails.
func (s *AuthService) invalidate(ctx context.Context, tok string, kind models.TokenKind, codec *token.Codec) (string, error) {
	claims, err := codec.Decode(tok)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrMalformedToken.Code, appErrors.ErrMalformedToken.Status, "cannot invalidate an undecodable token")
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.config.RefreshTokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	id, err := s.store.Insert(ctx, &models.RevokedToken{
		ID:        uuid.NewString(),
		Token:     tok,
		Kind:      kind,
		AccountID: claims.AccountID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist revocation")
	}

	s.metrics.RecordRevocation(string(kind))
	return id, nil
}

// WasTokenInvalidated reports whether a revocation record exists for the
// exact encoded token string. A store failure propagates as an error:
// guessing in either direction would be a security hole or a
// denial-of-service, so the request fails loudly instead.
func (s *AuthService) WasTokenInvalidated(ctx context.Context, tok string) (bool, error) {
	rec, err := s.store.FindByToken(ctx, tok)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check revocation")
	}
	return rec != nil, nil
}

// InvalidateTokenPair revokes both tokens of a pair concurrently with
// all-settled semantics: each attempt runs to completion regardless of
// the other's outcome, and failures are logged rather than returned. An
// expired or mangled refresh token must never block terminating the
// access-token session.
func (s *AuthService) InvalidateTokenPair(ctx context.Context, accessToken, refreshToken string) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if _, err := s.InvalidateAccessToken(ctx, accessToken); err != nil {
			s.logger.Warn("failed to invalidate access token", zap.Error(err))
		}
	}()

	go func() {
		defer wg.Done()
		if _, err := s.InvalidateRefreshToken(ctx, refreshToken); err != nil {
			s.logger.Warn("failed to invalidate refresh token", zap.Error(err))
		}
	}()

	wg.Wait()
}

// HashPassword derives a storable hash from a plaintext password.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (s *AuthService) CheckPassword(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
