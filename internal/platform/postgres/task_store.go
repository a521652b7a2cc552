package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using PostgreSQL.
// Content lists and answer state live in JSONB columns, so the bundle
// shape can evolve without migrations.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx returns a TaskStore bound to the given transaction.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

const taskColumns = `id, user_id, date, word_list, grammar_list, reading, listening, answers, is_completed, created_at`

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, bundle *domain.DailyTaskBundle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := bundle.Validate(); err != nil {
		log.Warn("bundle validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", bundle.ID.String()))
		return err
	}

	wordList, err := jsonbValue(bundle.WordList)
	if err != nil {
		return err
	}
	grammarList, err := jsonbValue(bundle.GrammarList)
	if err != nil {
		return err
	}
	reading, err := jsonbValue(bundle.Reading)
	if err != nil {
		return err
	}
	listening, err := jsonbValue(bundle.Listening)
	if err != nil {
		return err
	}
	answers, err := jsonbValue(bundle.Answers)
	if err != nil {
		return err
	}
	isCompleted, err := jsonbValue(bundle.IsCompleted)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		bundle.ID,
		bundle.UserID,
		bundle.Date,
		wordList,
		grammarList,
		reading,
		listening,
		answers,
		isCompleted,
		bundle.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create task bundle",
			slog.String("error", err.Error()),
			slog.String("task_id", bundle.ID.String()),
			slog.String("user_id", bundle.UserID))
		return MapError(err)
	}

	log.Info("task bundle created",
		slog.String("task_id", bundle.ID.String()),
		slog.String("user_id", bundle.UserID),
		slog.Int("word_count", len(bundle.WordList)),
		slog.Int("grammar_count", len(bundle.GrammarList)))
	return nil
}

// GetMostRecentByUser implements store.TaskStore.GetMostRecentByUser.
// Returns store.ErrTaskNotFound if the user has no bundle.
func (s *TaskStore) GetMostRecentByUser(ctx context.Context, userID string) (*domain.DailyTaskBundle, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM user_tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	bundle, err := s.scanBundle(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}
	return bundle, nil
}

// ListByUser implements store.TaskStore.ListByUser.
func (s *TaskStore) ListByUser(ctx context.Context, userID string) ([]*domain.DailyTaskBundle, error) {
	return s.list(ctx, `
		SELECT `+taskColumns+`
		FROM user_tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

// ListCurrent implements store.TaskStore.ListCurrent using a window over
// each user's bundles ordered by creation time.
func (s *TaskStore) ListCurrent(ctx context.Context) ([]*domain.DailyTaskBundle, error) {
	return s.list(ctx, `
		SELECT DISTINCT ON (user_id) `+taskColumns+`
		FROM user_tasks
		ORDER BY user_id, created_at DESC
	`)
}

// UpdateWordList implements store.TaskStore.UpdateWordList.
func (s *TaskStore) UpdateWordList(ctx context.Context, userID string, items []domain.WordListItem) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	wordList, err := jsonbValue(items)
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE user_tasks SET word_list = $2 WHERE user_id = $1`, userID, wordList)
	if err != nil {
		log.Error("failed to update word list",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

// DeleteByUser implements store.TaskStore.DeleteByUser.
func (s *TaskStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_tasks WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

func (s *TaskStore) scanBundle(row rowScanner) (*domain.DailyTaskBundle, error) {
	var (
		bundle      domain.DailyTaskBundle
		wordList    []byte
		grammarList []byte
		reading     []byte
		listening   []byte
		answers     []byte
		isCompleted []byte
	)
	err := row.Scan(
		&bundle.ID,
		&bundle.UserID,
		&bundle.Date,
		&wordList,
		&grammarList,
		&reading,
		&listening,
		&answers,
		&isCompleted,
		&bundle.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := scanJSONB(wordList, &bundle.WordList); err != nil {
		return nil, err
	}
	if err := scanJSONB(grammarList, &bundle.GrammarList); err != nil {
		return nil, err
	}
	if err := scanJSONB(reading, &bundle.Reading); err != nil {
		return nil, err
	}
	if err := scanJSONB(listening, &bundle.Listening); err != nil {
		return nil, err
	}
	if err := scanJSONB(answers, &bundle.Answers); err != nil {
		return nil, err
	}
	if err := scanJSONB(isCompleted, &bundle.IsCompleted); err != nil {
		return nil, err
	}

	if bundle.Answers == nil {
		bundle.Answers = map[string][]int{}
	}
	if bundle.IsCompleted == nil {
		bundle.IsCompleted = []string{}
	}

	return &bundle, nil
}

func (s *TaskStore) list(ctx context.Context, query string, args ...any) ([]*domain.DailyTaskBundle, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var bundles []*domain.DailyTaskBundle
	for rows.Next() {
		bundle, err := s.scanBundle(rows)
		if err != nil {
			return nil, MapError(err)
		}
		bundles = append(bundles, bundle)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return bundles, nil
}
