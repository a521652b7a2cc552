package store

import (
	"context"
	"database/sql"

	"github.com/lingosavor/savor-api/internal/domain"
)

// SubscriptionStore defines the interface for subscription provider
// customer records.
type SubscriptionStore interface {
	// Upsert writes the subscription record for a user, replacing any
	// existing one.
	Upsert(ctx context.Context, sub *domain.Subscription) error

	// GetByUser retrieves the subscription record for one user.
	// Returns ErrSubscriptionNotFound if none exists.
	GetByUser(ctx context.Context, userID string) (*domain.Subscription, error)

	// List returns every subscription record; the plan-sync job walks
	// the full set.
	List(ctx context.Context) ([]*domain.Subscription, error)

	// DeleteByUser removes the user's subscription record and returns
	// the number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a SubscriptionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) SubscriptionStore
}
