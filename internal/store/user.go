package store

import (
	"context"
	"database/sql"

	"github.com/lingosavor/savor-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrUserExists if a row already exists for the same ID.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their auth subject ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Update modifies an existing user's details. The caller provides a
	// complete user object; all mutable columns are written.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// AdjustGems atomically adds delta to the user's gem balance and
	// returns the new balance. A delta that would drive the balance
	// negative fails with domain.ErrGemsNegative and leaves the row
	// unchanged.
	AdjustGems(ctx context.Context, id string, delta int) (int, error)

	// SetPushToken stores the user's push notification token.
	// Returns ErrUserNotFound if the user does not exist.
	SetPushToken(ctx context.Context, id, token string) error

	// List returns all users. The scheduled pipelines walk the whole
	// population, so no pagination is offered.
	List(ctx context.Context) ([]*domain.User, error)

	// ListByPlan returns all users on the given plan.
	ListByPlan(ctx context.Context, plan domain.Plan) ([]*domain.User, error)

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id string) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
