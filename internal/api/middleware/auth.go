package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/service/auth"
)

// AuthMiddleware verifies bearer tokens and stashes the authenticated user
// ID in the request context.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the Authorization header and rejects the request
// with 401 when the token is missing, malformed, expired or invalid.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format, expected 'Bearer {token}'")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, message)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user ID placed in the context by
// Authenticate.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(shared.UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
