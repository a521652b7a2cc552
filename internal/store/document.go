package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
)

// DocumentStore defines the interface for user document persistence.
type DocumentStore interface {
	// Create saves a new document.
	Create(ctx context.Context, doc *domain.UserDocument) error

	// GetByID retrieves a document by its unique ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDocument, error)

	// UpdateStatus moves the document through the analysis lifecycle.
	// Returns ErrDocumentNotFound if the document does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error

	// SetTranscription stores the generated transcription on the document.
	// Returns ErrDocumentNotFound if the document does not exist.
	SetTranscription(ctx context.Context, id uuid.UUID, transcription string) error

	// DeleteByUser removes all documents owned by the user and returns
	// the number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns a DocumentStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DocumentStore
}

// AnalysisStore persists document analysis results.
type AnalysisStore interface {
	// Create saves one analysis result.
	Create(ctx context.Context, analysis *domain.DocumentAnalysis) error

	// DeleteByUser removes all analyses owned by the user and returns
	// the number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns an AnalysisStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AnalysisStore
}

// AudioStore persists synthesized narration records.
type AudioStore interface {
	// Create saves one audio record.
	Create(ctx context.Context, audio *domain.UserAudio) error

	// DeleteByUser removes all audio records owned by the user and
	// returns the number of rows removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// WithTx returns an AudioStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AudioStore
}
