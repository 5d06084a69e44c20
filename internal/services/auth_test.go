package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong-pass"))
}

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := auth.GenerateToken(userID, "bidder@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "bidder@example.com", claims.Email)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Hour)
	verifier := NewAuthService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService("test-secret", -time.Minute)

	token, err := auth.GenerateToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	_, err := auth.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
