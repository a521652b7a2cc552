package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
)

// MessageStore defines the interface for room conversation persistence.
type MessageStore interface {
	// Create saves a new message.
	Create(ctx context.Context, msg *domain.Message) error

	// ListByRoom returns a room's messages in chronological order.
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error)

	// ListByRoomSince returns a room's messages created after the given
	// instant, in chronological order. Grammar generation uses this to
	// find conversation the user has not yet been quizzed on.
	ListByRoomSince(ctx context.Context, roomID uuid.UUID, since time.Time) ([]*domain.Message, error)

	// DeleteByUser removes all messages owned by the user and returns
	// the number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a MessageStore bound to the provided transaction.
	WithTx(tx *sql.Tx) MessageStore
}
