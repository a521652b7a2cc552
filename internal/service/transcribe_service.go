package service

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// maxInlineMediaBytes bounds what can be sent to the model as inline
// media on a transcription request.
const maxInlineMediaBytes = 20 << 20

// mimeByExtension maps the upload extensions the app accepts to the MIME
// types the model understands.
var mimeByExtension = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".mp4":  "video/mp4",
}

// TranscribeService extracts an English transcription from a document's
// uploaded media and stores it on the document.
type TranscribeService struct {
	documents store.DocumentStore
	generator generation.Generator
	objects   ObjectStore
	logger    *slog.Logger
}

// NewTranscribeService creates a TranscribeService.
func NewTranscribeService(
	documents store.DocumentStore,
	generator generation.Generator,
	objects ObjectStore,
	log *slog.Logger,
) *TranscribeService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if objects == nil {
		panic("object store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TranscribeService{
		documents: documents,
		generator: generator,
		objects:   objects,
		logger:    log.With(slog.String("component", "transcribe_service")),
	}
}

// Transcribe downloads the document's media, runs it through the model,
// and stores the transcription. Image documents may span several uploaded
// pages; each page is transcribed and the parts are joined in order.
func (s *TranscribeService) Transcribe(ctx context.Context, user *domain.User, documentID uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc.UserID != user.ID {
		return "", ErrNotOwned
	}

	paths := []string{doc.Path}
	if doc.Type == domain.DocumentTypeImage && len(doc.ImagePaths) > 0 {
		paths = doc.ImagePaths
	}

	var parts []string
	for _, objectPath := range paths {
		text, err := s.transcribeObject(ctx, doc, objectPath)
		if err != nil {
			return "", err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	transcription := strings.Join(parts, "\n\n")

	if err := s.documents.SetTranscription(ctx, documentID, transcription); err != nil {
		return "", err
	}

	log.Info("document transcribed",
		slog.String("document_id", documentID.String()),
		slog.String("type", string(doc.Type)),
		slog.Int("parts", len(parts)),
		slog.Int("chars", len(transcription)))
	return transcription, nil
}

func (s *TranscribeService) transcribeObject(ctx context.Context, doc *domain.UserDocument, objectPath string) (string, error) {
	mimeType, ok := mimeByExtension[strings.ToLower(path.Ext(objectPath))]
	if !ok {
		return "", ErrUnsupportedMedia
	}

	data, err := s.objects.Download(ctx, objectPath)
	if err != nil {
		return "", err
	}
	if len(data) > maxInlineMediaBytes {
		return "", ErrMediaTooLarge
	}

	return s.generator.Transcribe(ctx, transcribePrompt(doc.Type), generation.Media{
		MIMEType: mimeType,
		Data:     data,
	})
}

// transcribePrompt tailors the instruction to the media kind.
func transcribePrompt(docType domain.DocumentType) string {
	switch docType {
	case domain.DocumentTypeAudio:
		return "Transcribe the spoken English in this audio. Return only the transcription text."
	case domain.DocumentTypeVideo:
		return "Transcribe the spoken English in this video. Return only the transcription text."
	case domain.DocumentTypeImage:
		return "Extract all English text visible in this image. Return only the text."
	default:
		return "Extract the English text content of this document. Return only the text."
	}
}
