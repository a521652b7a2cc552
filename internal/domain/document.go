package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DocumentType identifies the kind of source material a user uploaded.
type DocumentType string

const (
	DocumentTypeFile  DocumentType = "file"
	DocumentTypeImage DocumentType = "image"
	DocumentTypeAudio DocumentType = "audio"
	DocumentTypeText  DocumentType = "text"
	DocumentTypeVideo DocumentType = "video"
)

// DocumentStatus tracks a document through analysis.
type DocumentStatus string

const (
	DocumentStatusUnprocessed DocumentStatus = "unprocessed"
	DocumentStatusProcessing  DocumentStatus = "processing"
	DocumentStatusProcessed   DocumentStatus = "processed"
)

// Document validation errors
var (
	ErrDocumentIDEmpty      = errors.New("document ID cannot be empty")
	ErrDocumentUserIDEmpty  = errors.New("document user ID cannot be empty")
	ErrDocumentTypeInvalid  = errors.New("document type is not a known type")
	ErrDocumentPathEmpty    = errors.New("document path cannot be empty")
	ErrTranscriptionEmpty   = errors.New("document has no transcription")
	ErrTranscriptionTooLong = errors.New("transcription exceeds the synthesis limit")
)

// UserDocument is a user-uploaded source document. Path is the object
// storage location of the raw upload; image documents may carry several
// page images in ImagePaths instead.
type UserDocument struct {
	ID            uuid.UUID      `json:"id"`
	UserID        string         `json:"user_id"`
	FileName      string         `json:"file_name"`
	Type          DocumentType   `json:"type"`
	Path          string         `json:"path"`
	ImagePaths    []string       `json:"image_paths,omitempty"`
	Transcription string         `json:"transcription,omitempty"`
	Status        DocumentStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewUserDocument creates an unprocessed UserDocument.
// Returns an error if validation fails.
func NewUserDocument(userID, fileName string, docType DocumentType, path string) (*UserDocument, error) {
	now := time.Now().UTC()
	d := &UserDocument{
		ID:        uuid.New(),
		UserID:    userID,
		FileName:  fileName,
		Type:      docType,
		Path:      path,
		Status:    DocumentStatusUnprocessed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks if the UserDocument has valid data.
func (d *UserDocument) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDocumentIDEmpty
	}
	if d.UserID == "" {
		return ErrDocumentUserIDEmpty
	}
	switch d.Type {
	case DocumentTypeFile, DocumentTypeImage, DocumentTypeAudio, DocumentTypeText, DocumentTypeVideo:
	default:
		return ErrDocumentTypeInvalid
	}
	if d.Path == "" && len(d.ImagePaths) == 0 && d.Type != DocumentTypeText {
		return ErrDocumentPathEmpty
	}
	return nil
}

// DocumentAnalysis is the persisted output of the analysis flow: an
// overall summary plus per-sentence translations of the transcription.
type DocumentAnalysis struct {
	ID           uuid.UUID             `json:"id"`
	DocumentID   uuid.UUID             `json:"document_id"`
	UserID       string                `json:"user_id"`
	Summary      string                `json:"summary"`
	Translations []SentenceTranslation `json:"translations"`
	CreatedAt    time.Time             `json:"created_at"`
}

// SentenceTranslation pairs one source sentence with its translation.
type SentenceTranslation struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// UserAudio records one synthesized narration: the storage object and its
// public URL, keyed to the document whose transcription was read aloud.
type UserAudio struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}
