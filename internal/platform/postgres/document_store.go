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

// DocumentStore implements the store.DocumentStore interface using
// PostgreSQL.
type DocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDocumentStore creates a new PostgreSQL implementation of the
// DocumentStore interface. If logger is nil, a default logger will be used.
func NewDocumentStore(db store.DBTX, logger *slog.Logger) *DocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "document_store")),
	}
}

var _ store.DocumentStore = (*DocumentStore)(nil)

// WithTx returns a DocumentStore bound to the given transaction.
func (s *DocumentStore) WithTx(tx *sql.Tx) store.DocumentStore {
	return &DocumentStore{db: tx, logger: s.logger}
}

const documentColumns = `id, user_id, file_name, type, path, image_paths, transcription, status, created_at, updated_at`

// Create implements store.DocumentStore.Create.
func (s *DocumentStore) Create(ctx context.Context, doc *domain.UserDocument) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during create",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	imagePaths, err := jsonbValue(doc.ImagePaths)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.Type,
		doc.Path,
		imagePaths,
		doc.Transcription,
		doc.Status,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create document",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.DocumentStore.GetByID.
// Returns store.ErrDocumentNotFound if the document does not exist.
func (s *DocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM user_documents WHERE id = $1`

	var (
		doc        domain.UserDocument
		imagePaths []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.Type,
		&doc.Path,
		&imagePaths,
		&doc.Transcription,
		&doc.Status,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrDocumentNotFound
		}
		return nil, MapError(err)
	}

	if err := scanJSONB(imagePaths, &doc.ImagePaths); err != nil {
		return nil, err
	}

	return &doc, nil
}

// UpdateStatus implements store.DocumentStore.UpdateStatus.
func (s *DocumentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE user_documents SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "document")
}

// SetTranscription implements store.DocumentStore.SetTranscription.
func (s *DocumentStore) SetTranscription(ctx context.Context, id uuid.UUID, transcription string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE user_documents SET transcription = $2, updated_at = NOW() WHERE id = $1`,
		id, transcription)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "document")
}

// DeleteByUser implements store.DocumentStore.DeleteByUser.
func (s *DocumentStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_documents WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

// AnalysisStore implements the store.AnalysisStore interface using
// PostgreSQL.
type AnalysisStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAnalysisStore creates a new PostgreSQL implementation of the
// AnalysisStore interface.
func NewAnalysisStore(db store.DBTX, logger *slog.Logger) *AnalysisStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalysisStore{
		db:     db,
		logger: logger.With(slog.String("component", "analysis_store")),
	}
}

var _ store.AnalysisStore = (*AnalysisStore)(nil)

// WithTx returns an AnalysisStore bound to the given transaction.
func (s *AnalysisStore) WithTx(tx *sql.Tx) store.AnalysisStore {
	return &AnalysisStore{db: tx, logger: s.logger}
}

// Create implements store.AnalysisStore.Create.
func (s *AnalysisStore) Create(ctx context.Context, analysis *domain.DocumentAnalysis) error {
	translations, err := jsonbValue(analysis.Translations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO document_analyses (id, document_id, user_id, summary, translations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.DocumentID,
		analysis.UserID,
		analysis.Summary,
		translations,
		analysis.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// DeleteByUser implements store.AnalysisStore.DeleteByUser.
func (s *AnalysisStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM document_analyses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

// AudioStore implements the store.AudioStore interface using PostgreSQL.
type AudioStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAudioStore creates a new PostgreSQL implementation of the AudioStore
// interface.
func NewAudioStore(db store.DBTX, logger *slog.Logger) *AudioStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AudioStore{
		db:     db,
		logger: logger.With(slog.String("component", "audio_store")),
	}
}

var _ store.AudioStore = (*AudioStore)(nil)

// WithTx returns an AudioStore bound to the given transaction.
func (s *AudioStore) WithTx(tx *sql.Tx) store.AudioStore {
	return &AudioStore{db: tx, logger: s.logger}
}

// Create implements store.AudioStore.Create.
func (s *AudioStore) Create(ctx context.Context, audio *domain.UserAudio) error {
	query := `
		INSERT INTO user_audios (id, user_id, document_id, object_name, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		audio.ID,
		audio.UserID,
		audio.DocumentID,
		audio.ObjectName,
		audio.URL,
		audio.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// DeleteByUser implements store.AudioStore.DeleteByUser.
func (s *AudioStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_audios WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}
