package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// maxSpeechChars bounds the transcription length accepted by the
// synthesis provider in one request.
const maxSpeechChars = 5000

// SpeechService reads a document's transcription aloud: synthesis, upload
// to object storage, and an audio record pointing at the public URL.
// Free-plan users pay the text-processing gem price.
type SpeechService struct {
	documents   store.DocumentStore
	audios      store.AudioStore
	synthesizer Synthesizer
	objects     ObjectStore
	gems        *GemService
	logger      *slog.Logger
}

// NewSpeechService creates a SpeechService.
func NewSpeechService(
	documents store.DocumentStore,
	audios store.AudioStore,
	synthesizer Synthesizer,
	objects ObjectStore,
	gems *GemService,
	log *slog.Logger,
) *SpeechService {
	if synthesizer == nil {
		panic("synthesizer cannot be nil")
	}
	if objects == nil {
		panic("object store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SpeechService{
		documents:   documents,
		audios:      audios,
		synthesizer: synthesizer,
		objects:     objects,
		gems:        gems,
		logger:      log.With(slog.String("component", "speech_service")),
	}
}

// Synthesize narrates the document's transcription and returns the stored
// audio record. The gem charge is refunded if any later step fails.
func (s *SpeechService) Synthesize(ctx context.Context, user *domain.User, documentID uuid.UUID) (*domain.UserAudio, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != user.ID {
		return nil, ErrNotOwned
	}
	if doc.Transcription == "" {
		return nil, domain.ErrTranscriptionEmpty
	}
	if len([]rune(doc.Transcription)) > maxSpeechChars {
		return nil, domain.ErrTranscriptionTooLong
	}

	charged, err := s.gems.ChargeForText(ctx, user, doc.Transcription)
	if err != nil {
		return nil, err
	}

	audio, err := s.synthesizeAndStore(ctx, user, doc)
	if err != nil {
		s.gems.Refund(ctx, user.ID, charged)
		return nil, err
	}

	log.Info("narration synthesized",
		slog.String("document_id", documentID.String()),
		slog.String("user_id", user.ID),
		slog.Int("gems_charged", charged),
		slog.String("object", audio.ObjectName))
	return audio, nil
}

func (s *SpeechService) synthesizeAndStore(ctx context.Context, user *domain.User, doc *domain.UserDocument) (*domain.UserAudio, error) {
	data, err := s.synthesizer.Synthesize(ctx, doc.Transcription)
	if err != nil {
		return nil, err
	}

	audio := &domain.UserAudio{
		ID:         uuid.New(),
		UserID:     user.ID,
		DocumentID: doc.ID,
		CreatedAt:  time.Now().UTC(),
	}
	audio.ObjectName = fmt.Sprintf("audio/%s/%s.mp3", user.ID, audio.ID)

	url, err := s.objects.Upload(ctx, audio.ObjectName, "audio/mpeg", data)
	if err != nil {
		return nil, err
	}
	audio.URL = url

	if err := s.audios.Create(ctx, audio); err != nil {
		// The uploaded object is orphaned without its record; drop it.
		if delErr := s.objects.Delete(ctx, audio.ObjectName); delErr != nil {
			logger.FromContextOrDefault(ctx, s.logger).Warn("failed to delete orphaned audio object",
				slog.String("error", delErr.Error()),
				slog.String("object", audio.ObjectName))
		}
		return nil, err
	}

	return audio, nil
}
