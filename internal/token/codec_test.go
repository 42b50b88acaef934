package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("round-trip-secret")

	signed, err := codec.Issue("acc-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := codec.Verify(signed)
	require.NotNil(t, claims)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "acc-1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := NewCodec("the-right-secret")
	verifier := NewCodec("a-different-secret")

	signed, err := issuer.Issue("acc-1", time.Hour)
	require.NoError(t, err)

	assert.Nil(t, verifier.Verify(signed))
}

func TestVerifyRejectsForeignAlgorithm(t *testing.T) {
	codec := NewCodec("pinning-secret")

	// Same key material, different declared algorithm.
	claims := &Claims{AccountID: "acc-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("pinning-secret"))
	require.NoError(t, err)

	assert.Nil(t, codec.Verify(foreign))
}

func TestVerifyMalformed(t *testing.T) {
	codec := NewCodec("secret")

	assert.Nil(t, codec.Verify(""))
	assert.Nil(t, codec.Verify("not-a-token"))
	assert.Nil(t, codec.Verify("aaa.bbb.ccc"))
}

func TestVerifyExpired(t *testing.T) {
	codec := NewCodec("expiry-secret")

	signed, err := codec.Issue("acc-1", -time.Second)
	require.NoError(t, err)

	assert.Nil(t, codec.Verify(signed))
}

func TestIssueWithoutExpiry(t *testing.T) {
	codec := NewCodec("no-expiry-secret")

	signed, err := codec.Issue("acc-1", 0)
	require.NoError(t, err)

	claims := codec.Verify(signed)
	require.NotNil(t, claims)
	assert.Nil(t, claims.ExpiresAt)
}

func TestDecodeExpiredToken(t *testing.T) {
	codec := NewCodec("decode-secret")

	signed, err := codec.Issue("acc-1", -time.Minute)
	require.NoError(t, err)

	// Verification refuses the expired token but decoding still surfaces
	// the claims needed to record the revocation.
	assert.Nil(t, codec.Verify(signed))

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Before(time.Now()))
}

func TestDecodeGarbage(t *testing.T) {
	codec := NewCodec("secret")

	_, err := codec.Decode("garbage")
	assert.Error(t, err)
}
