package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
)

// DictionaryStore defines the interface for the shared dictionary.
type DictionaryStore interface {
	// Create saves a new dictionary entry.
	Create(ctx context.Context, entry *domain.DictionaryEntry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrDictionaryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DictionaryEntry, error)

	// GetByWord retrieves an entry by its base word.
	// Returns ErrDictionaryNotFound if the entry does not exist.
	GetByWord(ctx context.Context, word string) (*domain.DictionaryEntry, error)

	// IncrementSavedUsers bumps the saved-user counter by delta, which
	// may be negative. Returns ErrDictionaryNotFound if the entry does
	// not exist.
	IncrementSavedUsers(ctx context.Context, id uuid.UUID, delta int) error

	// WithTx returns a DictionaryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DictionaryStore
}
