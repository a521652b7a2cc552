package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/config"
	"github.com/lingosavor/savor-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: strings.Repeat("s", 32)})
	require.NoError(t, err)
	return svc
}

func authProbe(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		seen = userID
		w.WriteHeader(http.StatusOK)
	})
	return next, &seen
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)
	token, err := jwtService.GenerateToken(context.Background(), "auth-1")
	require.NoError(t, err)

	next, seen := authProbe(t)
	handler := NewAuthMiddleware(jwtService).Authenticate(next)

	r := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auth-1", *seen)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	handler := NewAuthMiddleware(newTestJWTService(t)).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/anything", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	handler := NewAuthMiddleware(newTestJWTService(t)).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
	r.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	t.Parallel()

	handler := NewAuthMiddleware(newTestJWTService(t)).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
