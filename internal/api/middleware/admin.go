package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/lingosavor/savor-api/internal/api/shared"
)

// AdminMiddleware gates operator-only endpoints behind a shared token. Only
// the bcrypt hash of the token is configured on the server; generate it with
// cmd/hash-generator.
type AdminMiddleware struct {
	tokenHash string
}

// NewAdminMiddleware creates an AdminMiddleware checking against the given
// bcrypt hash. An empty hash disables the endpoints entirely.
func NewAdminMiddleware(tokenHash string) *AdminMiddleware {
	return &AdminMiddleware{tokenHash: tokenHash}
}

// Authorize compares the X-Admin-Token header against the configured hash.
func (m *AdminMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokenHash == "" {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin endpoints are disabled")
			return
		}

		token := r.Header.Get("X-Admin-Token")
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Admin token required")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(m.tokenHash), []byte(token)); err != nil {
			shared.RespondWithError(w, r, http.StatusForbidden, "Invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
