package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/marginalia-api/internal/service"
	"github.com/noah-isme/marginalia-api/pkg/response"
)

// Context keys populated by RequiresAuth for downstream handlers. The raw
// token strings are carried alongside the resolved account so handlers
// like logout never re-parse the cookie header.
const (
	ContextAccountIDKey    = "currentAccountID"
	ContextAccessTokenKey  = "currentAccessToken"
	ContextRefreshTokenKey = "currentRefreshToken"
)

// Cookie names shared with the session routes.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// RequiresAuth gates protected routes. Both token cookies must be
// present, the access token must verify, and it must not have been
// revoked. All three checks are independent; every failure produces the
// same fixed 401 body so callers cannot tell which check tripped. Only
// the access token's revocation is checked here — the refresh token's is
// enforced by the refresh flow, keeping this at one store lookup per
// request.
func RequiresAuth(authService *service.AuthService, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, accessErr := c.Cookie(AccessTokenCookie)
		refreshToken, refreshErr := c.Cookie(RefreshTokenCookie)
		if accessErr != nil || refreshErr != nil || accessToken == "" || refreshToken == "" {
			reject(c, metrics)
			return
		}

		claims := authService.VerifyAccessToken(accessToken)
		if claims == nil {
			reject(c, metrics)
			return
		}

		revoked, err := authService.WasTokenInvalidated(c.Request.Context(), accessToken)
		if err != nil {
			// Store outage: fail loudly rather than guessing in either
			// direction.
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			reject(c, metrics)
			return
		}

		c.Set(ContextAccountIDKey, claims.AccountID)
		c.Set(ContextAccessTokenKey, accessToken)
		c.Set(ContextRefreshTokenKey, refreshToken)
		c.Next()
	}
}

func reject(c *gin.Context, metrics *service.MetricsService) {
	metrics.RecordAuthRejection()
	response.NotAuthorized(c)
	c.Abort()
}

// AccountID returns the account resolved by RequiresAuth.
func AccountID(c *gin.Context) string {
	return stringFromContext(c, ContextAccountIDKey)
}

// AccessToken returns the raw access token found by RequiresAuth.
func AccessToken(c *gin.Context) string {
	return stringFromContext(c, ContextAccessTokenKey)
}

// RefreshToken returns the raw refresh token found by RequiresAuth.
func RefreshToken(c *gin.Context) string {
	return stringFromContext(c, ContextRefreshTokenKey)
}

func stringFromContext(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
