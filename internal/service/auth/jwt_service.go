// Package auth validates the bearer tokens issued to mobile clients.
// Tokens are HMAC-SHA256 signed JWTs whose subject is the authentication
// provider's user ID, which is also the primary key of the users table.
package auth

import (
	"context"
	"time"
)

// Claims holds the validated claims extracted from a token.
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// JWTService handles generation and validation of access tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the given user ID.
	GenerateToken(ctx context.Context, userID string) (string, error)

	// ValidateToken checks the signature and time claims of a token and
	// returns its claims. Returns ErrExpiredToken or ErrInvalidToken on
	// failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
