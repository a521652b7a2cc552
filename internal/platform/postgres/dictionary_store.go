package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// DictionaryStore implements the store.DictionaryStore interface using
// PostgreSQL. Entries are shared across users and keyed by the base word.
type DictionaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDictionaryStore creates a new PostgreSQL implementation of the
// DictionaryStore interface. If logger is nil, a default logger will be
// used.
func NewDictionaryStore(db store.DBTX, logger *slog.Logger) *DictionaryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DictionaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "dictionary_store")),
	}
}

var _ store.DictionaryStore = (*DictionaryStore)(nil)

// WithTx returns a DictionaryStore bound to the given transaction.
func (s *DictionaryStore) WithTx(tx *sql.Tx) store.DictionaryStore {
	return &DictionaryStore{db: tx, logger: s.logger}
}

const dictionaryColumns = `id, word, pronunciation, meanings, derivatives, etymology, saved_users, created_at, updated_at`

// Create implements store.DictionaryStore.Create.
// Returns store.ErrWordExists if an entry for the word already exists.
func (s *DictionaryStore) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("dictionary entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word", entry.Word))
		return err
	}

	meanings, err := jsonbValue(entry.Meanings)
	if err != nil {
		return err
	}
	derivatives, err := jsonbValue(entry.Derivatives)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO dictionary (` + dictionaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Word,
		entry.Pronunciation,
		meanings,
		derivatives,
		entry.Etymology,
		entry.SavedUsers,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrWordExists
		}
		log.Error("failed to create dictionary entry",
			slog.String("error", err.Error()),
			slog.String("word", entry.Word))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.DictionaryStore.GetByID.
// Returns store.ErrDictionaryNotFound if the entry does not exist.
func (s *DictionaryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DictionaryEntry, error) {
	return s.get(ctx, `SELECT `+dictionaryColumns+` FROM dictionary WHERE id = $1`, id)
}

// GetByWord implements store.DictionaryStore.GetByWord. Lookup is
// case-insensitive against the stored base form.
func (s *DictionaryStore) GetByWord(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	return s.get(ctx, `SELECT `+dictionaryColumns+` FROM dictionary WHERE LOWER(word) = LOWER($1)`, word)
}

// IncrementSavedUsers implements store.DictionaryStore.IncrementSavedUsers.
// The counter never drops below zero.
func (s *DictionaryStore) IncrementSavedUsers(ctx context.Context, id uuid.UUID, delta int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE dictionary
		SET saved_users = GREATEST(saved_users + $2, 0), updated_at = NOW()
		WHERE id = $1
	`, id, delta)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "dictionary entry")
}

func (s *DictionaryStore) get(ctx context.Context, query string, arg any) (*domain.DictionaryEntry, error) {
	var (
		entry       domain.DictionaryEntry
		meanings    []byte
		derivatives []byte
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&entry.ID,
		&entry.Word,
		&entry.Pronunciation,
		&meanings,
		&derivatives,
		&entry.Etymology,
		&entry.SavedUsers,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrDictionaryNotFound
		}
		return nil, MapError(err)
	}

	if err := scanJSONB(meanings, &entry.Meanings); err != nil {
		return nil, err
	}
	if err := scanJSONB(derivatives, &entry.Derivatives); err != nil {
		return nil, err
	}

	return &entry, nil
}
