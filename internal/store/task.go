package store

import (
	"context"
	"database/sql"

	"github.com/lingosavor/savor-api/internal/domain"
)

// TaskStore defines the interface for daily task bundle persistence.
type TaskStore interface {
	// Create saves a new bundle.
	// Returns validation errors from the bundle if data is invalid.
	Create(ctx context.Context, bundle *domain.DailyTaskBundle) error

	// GetMostRecentByUser returns the user's newest bundle by creation
	// time. Returns ErrTaskNotFound if the user has no bundle.
	GetMostRecentByUser(ctx context.Context, userID string) (*domain.DailyTaskBundle, error)

	// ListByUser returns all bundles for one user, newest first. More
	// than one row means stale bundles are awaiting replacement.
	ListByUser(ctx context.Context, userID string) ([]*domain.DailyTaskBundle, error)

	// ListCurrent returns the newest bundle per user across the whole
	// population, used by the scheduler's target-user computation.
	ListCurrent(ctx context.Context) ([]*domain.DailyTaskBundle, error)

	// UpdateWordList replaces the word list on every bundle the user
	// currently has and returns the number of bundles touched. Zero
	// means the caller should create a fresh bundle instead.
	UpdateWordList(ctx context.Context, userID string, items []domain.WordListItem) (int64, error)

	// DeleteByUser removes all bundles for the user and returns the
	// number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
