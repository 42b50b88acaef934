package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/internal/models"
	"github.com/noah-isme/marginalia-api/internal/service"
	"github.com/noah-isme/marginalia-api/pkg/response"
)

type fakeRevocationStore struct {
	records map[string]*models.RevokedToken
	findErr error
}

func (f *fakeRevocationStore) Insert(ctx context.Context, rec *models.RevokedToken) (string, error) {
	if f.records == nil {
		f.records = make(map[string]*models.RevokedToken)
	}
	f.records[rec.Token] = rec
	return rec.ID, nil
}

func (f *fakeRevocationStore) FindByToken(ctx context.Context, tok string) (*models.RevokedToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.records[tok], nil
}

type fakeCredentialStore struct{}

func (f *fakeCredentialStore) FindByLogin(ctx context.Context, login string) (*models.Account, error) {
	return nil, nil
}

func (f *fakeCredentialStore) Touch(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func newAuthService(store *fakeRevocationStore) *service.AuthService {
	return service.NewAuthService(store, &fakeCredentialStore{}, nil, zap.NewNop(), nil, service.AuthConfig{
		AccessSecret:    "mw-access-secret",
		RefreshSecret:   "mw-refresh-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

type contextCapture struct {
	called       bool
	accountID    string
	accessToken  string
	refreshToken string
}

func newRouter(svc *service.AuthService, capture *contextCapture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequiresAuth(svc, nil), func(c *gin.Context) {
		capture.called = true
		capture.accountID = AccountID(c)
		capture.accessToken = AccessToken(c)
		capture.refreshToken = RefreshToken(c)
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, cookies map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiresAuthMissingCookies(t *testing.T) {
	capture := &contextCapture{}
	r := newRouter(newAuthService(&fakeRevocationStore{}), capture)

	w := doRequest(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), response.NotAuthorizedMessage)
	assert.False(t, capture.called)
}

func TestRequiresAuthMissingRefreshCookie(t *testing.T) {
	svc := newAuthService(&fakeRevocationStore{})
	accessToken, err := svc.IssueAccessToken("A1")
	require.NoError(t, err)

	capture := &contextCapture{}
	r := newRouter(svc, capture)

	w := doRequest(r, map[string]string{AccessTokenCookie: accessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, capture.called)
}

func TestRequiresAuthBadSignature(t *testing.T) {
	// Token issued by a service with different key material.
	other := service.NewAuthService(&fakeRevocationStore{}, &fakeCredentialStore{}, nil, zap.NewNop(), nil, service.AuthConfig{
		AccessSecret:    "some-other-secret",
		RefreshSecret:   "mw-refresh-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	forged, err := other.IssueAccessToken("A1")
	require.NoError(t, err)

	capture := &contextCapture{}
	r := newRouter(newAuthService(&fakeRevocationStore{}), capture)

	w := doRequest(r, map[string]string{AccessTokenCookie: forged, RefreshTokenCookie: "anything"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), response.NotAuthorizedMessage)
	assert.False(t, capture.called)
}

func TestRequiresAuthRevokedToken(t *testing.T) {
	store := &fakeRevocationStore{}
	svc := newAuthService(store)
	accessToken, err := svc.IssueAccessToken("A1")
	require.NoError(t, err)
	_, err = svc.InvalidateAccessToken(context.Background(), accessToken)
	require.NoError(t, err)

	capture := &contextCapture{}
	r := newRouter(svc, capture)

	w := doRequest(r, map[string]string{AccessTokenCookie: accessToken, RefreshTokenCookie: "refresh"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, capture.called)
}

func TestRequiresAuthStoreFailure(t *testing.T) {
	store := &fakeRevocationStore{findErr: errors.New("store down")}
	svc := newAuthService(store)
	accessToken, err := svc.IssueAccessToken("A1")
	require.NoError(t, err)

	capture := &contextCapture{}
	r := newRouter(svc, capture)

	w := doRequest(r, map[string]string{AccessTokenCookie: accessToken, RefreshTokenCookie: "refresh"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, capture.called)
}

func TestRequiresAuthSuccess(t *testing.T) {
	svc := newAuthService(&fakeRevocationStore{})
	accessToken, err := svc.IssueAccessToken("A1")
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken("A1")
	require.NoError(t, err)

	capture := &contextCapture{}
	r := newRouter(svc, capture)

	w := doRequest(r, map[string]string{AccessTokenCookie: accessToken, RefreshTokenCookie: refreshToken})
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, capture.called)
	assert.Equal(t, "A1", capture.accountID)
	assert.Equal(t, accessToken, capture.accessToken)
	assert.Equal(t, refreshToken, capture.refreshToken)
}
