// Package token produces and verifies the compact signed strings used as
// bearer credentials. One codec instance holds one signing key; the
// system constructs two, one per token kind.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingMethod is pinned for the whole system. Verification rejects any
// token whose header declares a different algorithm, so a tampered header
// cannot downgrade the check.
var signingMethod = jwt.SigningMethodHS256

// Claims is the payload carried by both token kinds.
type Claims struct {
	AccountID string `json:"accountId"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single shared-secret key.
type Codec struct {
	secret []byte
}

// NewCodec builds a codec around the given shared secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue encodes and signs a token for the given account. A ttl of zero
// issues a token without an expiry claim.
func (c *Codec) Issue(accountID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  accountID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks structure, signature and expiry. Any defect yields nil:
// an invalid credential is an expected outcome for callers, not an error.
func (c *Codec) Verify(tokenString string) *Claims {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// Decode extracts the claims without checking signature or expiry. Used
// when invalidating a token: a pair being revoked may already be expired,
// but its account and expiry still need to be read. Fails only when the
// string is not structurally a token.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("decode token: unexpected claims type")
	}
	return claims, nil
}
