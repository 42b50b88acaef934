package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/marginalia-api/internal/middleware"
	"github.com/noah-isme/marginalia-api/internal/models"
	"github.com/noah-isme/marginalia-api/internal/service"
	"github.com/noah-isme/marginalia-api/pkg/config"
	appErrors "github.com/noah-isme/marginalia-api/pkg/errors"
	"github.com/noah-isme/marginalia-api/pkg/response"
)

// AuthHandler wires the session endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	cookies config.CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookies config.CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies}
}

// Login godoc
// @Summary Authenticate an account
// @Description Authenticate by handle or email and set the token cookies
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status == http.StatusUnauthorized {
			// One fixed body for every credential failure so callers
			// cannot probe which part was wrong.
			response.NotAuthorized(c)
			return
		}
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.Status(http.StatusOK)
}

// Logout godoc
// @Summary Terminate the current session
// @Description Revoke both tokens of the authenticated session
// @Tags Session
// @Produce json
// @Success 200
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := middleware.AccessToken(c)
	refreshToken := middleware.RefreshToken(c)

	// Both invalidations run concurrently and independently; logout
	// responds success once both attempts have settled, even when one of
	// them failed.
	h.service.InvalidateTokenPair(c.Request.Context(), accessToken, refreshToken)

	c.Status(http.StatusOK)
}

// Refresh godoc
// @Summary Rotate the token pair
// @Description Exchange a valid refresh token for a brand-new pair
// @Tags Session
// @Produce json
// @Success 200
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	accessToken, accessErr := c.Cookie(middleware.AccessTokenCookie)
	refreshToken, refreshErr := c.Cookie(middleware.RefreshTokenCookie)
	if accessErr != nil || refreshErr != nil || accessToken == "" || refreshToken == "" {
		response.NotAuthorized(c)
		return
	}

	claims := h.service.VerifyRefreshToken(refreshToken)
	if claims == nil {
		response.NotAuthorized(c)
		return
	}

	// The refresh token's revocation is enforced here and only here.
	revoked, err := h.service.WasTokenInvalidated(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	if revoked {
		response.NotAuthorized(c)
		return
	}

	// The incoming pair is retired before new credentials are minted.
	// Rotation is unconditional: from the client's perspective a refresh
	// token is single-use.
	h.service.InvalidateTokenPair(c.Request.Context(), accessToken, refreshToken)

	pair, err := h.service.IssueTokenPair(claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.Status(http.StatusOK)
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *models.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, h.cookies.AccessMaxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, h.cookies.RefreshMaxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
}
