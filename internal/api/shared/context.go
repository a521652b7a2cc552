// Package shared holds helpers used by every API handler: context keys,
// request decoding and the JSON response envelope.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// UserIDContextKey is the key for the authenticated user's ID in the
	// request context. The value is the authentication subject string.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey is the key for the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID generates a new trace ID and adds it to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// newTraceID returns a 16-byte random hex string. Falls back to a
// timestamp-derived value if the system randomness source fails.
func newTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("trace-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
