package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "hospital-api")

	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "hospital-api", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "hospital-api")
	other := NewTokenService("other-secret", time.Hour, "hospital-api")

	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, "hospital-api")

	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "hospital-api")
	other := NewTokenService("test-secret", time.Hour, "other-issuer")

	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "hospital-api")

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
