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

// WordStore implements the store.WordStore interface using PostgreSQL.
// List IDs, review data, and answer history live in JSONB columns.
type WordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWordStore creates a new PostgreSQL implementation of the WordStore
// interface. If logger is nil, a default logger will be used.
func NewWordStore(db store.DBTX, logger *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

var _ store.WordStore = (*WordStore)(nil)

// WithTx returns a WordStore bound to the given transaction.
func (s *WordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &WordStore{db: tx, logger: s.logger}
}

const wordColumns = `id, user_id, word, word_id, list_ids, stage, review_data, answers, created_at, updated_at`

// Create implements store.WordStore.Create.
func (s *WordStore) Create(ctx context.Context, word *domain.UserWord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	listIDs, err := jsonbValue(word.ListIDs)
	if err != nil {
		return err
	}
	reviewData, err := jsonbValue(word.ReviewData)
	if err != nil {
		return err
	}
	answers, err := jsonbValue(word.Answers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_words (` + wordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.UserID,
		word.Word,
		word.WordID,
		listIDs,
		word.Stage,
		reviewData,
		answers,
		word.CreatedAt,
		word.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()),
			slog.String("user_id", word.UserID))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.WordStore.GetByID.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *WordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWord, error) {
	query := `SELECT ` + wordColumns + ` FROM user_words WHERE id = $1`

	word, err := s.scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}
	return word, nil
}

// List implements store.WordStore.List.
func (s *WordStore) List(ctx context.Context) ([]*domain.UserWord, error) {
	return s.list(ctx, `SELECT `+wordColumns+` FROM user_words ORDER BY created_at`)
}

// ListByUser implements store.WordStore.ListByUser.
func (s *WordStore) ListByUser(ctx context.Context, userID string) ([]*domain.UserWord, error) {
	return s.list(ctx,
		`SELECT `+wordColumns+` FROM user_words WHERE user_id = $1 ORDER BY created_at`, userID)
}

// ListRandomByUser implements store.WordStore.ListRandomByUser.
func (s *WordStore) ListRandomByUser(ctx context.Context, userID string, limit int) ([]*domain.UserWord, error) {
	return s.list(ctx,
		`SELECT `+wordColumns+` FROM user_words WHERE user_id = $1 ORDER BY random() LIMIT $2`,
		userID, limit)
}

// UpdateStage implements store.WordStore.UpdateStage.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *WordStore) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE user_words SET stage = $2, updated_at = NOW() WHERE id = $1`, id, stage)
	if err != nil {
		log.Error("failed to update word stage",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, "word")
}

// DeleteByUser implements store.WordStore.DeleteByUser.
func (s *WordStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_words WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *WordStore) scanWord(row rowScanner) (*domain.UserWord, error) {
	var (
		word       domain.UserWord
		listIDs    []byte
		reviewData []byte
		answers    []byte
	)
	err := row.Scan(
		&word.ID,
		&word.UserID,
		&word.Word,
		&word.WordID,
		&listIDs,
		&word.Stage,
		&reviewData,
		&answers,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := scanJSONB(listIDs, &word.ListIDs); err != nil {
		return nil, err
	}
	if err := scanJSONB(reviewData, &word.ReviewData); err != nil {
		return nil, err
	}
	if err := scanJSONB(answers, &word.Answers); err != nil {
		return nil, err
	}

	return &word, nil
}

func (s *WordStore) list(ctx context.Context, query string, args ...any) ([]*domain.UserWord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.UserWord
	for rows.Next() {
		word, err := s.scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return words, nil
}
