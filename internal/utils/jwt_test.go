package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	access, err := NewAccessToken(testSecret, 7, "ana@example.com", 60)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)

	claims, err := ParseAccessToken(testSecret, access.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestNewAccessToken_ExpiryIsTTLFromIssuance(t *testing.T) {
	before := time.Now().UTC()
	access, err := NewAccessToken(testSecret, 7, "ana@example.com", 60)
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.False(t, access.Exp.Before(before.Add(60*time.Minute)))
	assert.False(t, access.Exp.After(after.Add(60*time.Minute)))

	claims, err := ParseAccessToken(testSecret, access.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, 60*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestParseAccessToken_Expired(t *testing.T) {
	access, err := NewAccessToken(testSecret, 7, "ana@example.com", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, access.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	access, err := NewAccessToken(testSecret, 7, "ana@example.com", 60)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", access.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken(testSecret, "this-is-not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseAccessToken_MissingUserIDFailsClosed(t *testing.T) {
	// A well-signed token whose claims lack user_id must not be accepted.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseAccessToken_WrongSigningMethod(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, signed)
	assert.Error(t, err)
}
