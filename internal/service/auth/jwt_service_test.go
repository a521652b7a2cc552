package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/config"
)

func testService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret: strings.Repeat("s", 32),
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	token, err := svc.GenerateToken(context.Background(), "auth-uid-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "auth-uid-1", claims.UserID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	svc.timeFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err := svc.GenerateToken(context.Background(), "auth-uid-1")
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Parallel()

	issuer := testService(t)
	token, err := issuer.GenerateToken(context.Background(), "auth-uid-1")
	require.NoError(t, err)

	verifier, err := NewJWTService(config.AuthConfig{
		JWTSecret: strings.Repeat("x", 32),
	})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)
}
