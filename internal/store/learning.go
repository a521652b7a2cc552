package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
)

// WordStore defines the interface for saved-word persistence.
type WordStore interface {
	// Create saves a new user word.
	// Returns validation errors from the domain UserWord if data is invalid.
	Create(ctx context.Context, word *domain.UserWord) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWord, error)

	// List returns every saved word across all users. The word-list
	// refresh job groups the result by user itself.
	List(ctx context.Context) ([]*domain.UserWord, error)

	// ListByUser returns all words saved by one user.
	ListByUser(ctx context.Context, userID string) ([]*domain.UserWord, error)

	// ListRandomByUser returns up to limit of the user's words in random
	// order, used to seed example generation.
	ListRandomByUser(ctx context.Context, userID string, limit int) ([]*domain.UserWord, error)

	// UpdateStage sets the word's stage.
	// Returns ErrWordNotFound if the word does not exist.
	UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error

	// DeleteByUser removes all words owned by the user and returns the
	// number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a WordStore bound to the provided transaction.
	WithTx(tx *sql.Tx) WordStore
}

// RoomStore defines the interface for study-room persistence.
type RoomStore interface {
	// Create saves a new room.
	Create(ctx context.Context, room *domain.UserRoom) error

	// GetByID retrieves a room by its unique ID.
	// Returns ErrRoomNotFound if the room does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserRoom, error)

	// ListByUser returns all rooms owned by one user.
	ListByUser(ctx context.Context, userID string) ([]*domain.UserRoom, error)

	// UpdateStage sets the room's stage.
	// Returns ErrRoomNotFound if the room does not exist.
	UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error

	// DeleteByUser removes all rooms owned by the user and returns the
	// number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a RoomStore bound to the provided transaction.
	WithTx(tx *sql.Tx) RoomStore
}
