package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
)

// NotificationStore defines the interface for the notification queue.
type NotificationStore interface {
	// Create enqueues one notification.
	Create(ctx context.Context, n *domain.Notification) error

	// CreateBatch enqueues many notifications in a single statement and
	// returns the number of rows written.
	CreateBatch(ctx context.Context, ns []*domain.Notification) (int64, error)

	// MarkSent records successful delivery.
	// Returns ErrNotificationNotFound if the notification does not exist.
	MarkSent(ctx context.Context, id uuid.UUID) error

	// MarkFailed records a delivery failure with its reason.
	// Returns ErrNotificationNotFound if the notification does not exist.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error

	// ListPending returns up to limit pending notifications, oldest first.
	ListPending(ctx context.Context, limit int) ([]*domain.Notification, error)

	// DeleteByUser removes all notifications for the user and returns
	// the number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a NotificationStore bound to the provided transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
