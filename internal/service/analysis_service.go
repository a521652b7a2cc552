package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// AnalysisService runs the paid document-analysis flow: summary plus
// per-sentence translations of an English transcription, billed in gems
// for free-plan users with a compensating refund on failure.
type AnalysisService struct {
	documents store.DocumentStore
	analyses  store.AnalysisStore
	generator generation.Generator
	gems      *GemService
	objects   ObjectStore
	logger    *slog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(
	documents store.DocumentStore,
	analyses store.AnalysisStore,
	generator generation.Generator,
	gems *GemService,
	objects ObjectStore,
	log *slog.Logger,
) *AnalysisService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnalysisService{
		documents: documents,
		analyses:  analyses,
		generator: generator,
		gems:      gems,
		objects:   objects,
		logger:    log.With(slog.String("component", "analysis_service")),
	}
}

// Analyze summarizes and translates the document's transcription. The
// charge happens before any generation; if generation or persistence then
// fails, the charge is refunded and the document returns to unprocessed.
func (s *AnalysisService) Analyze(ctx context.Context, user *domain.User, documentID uuid.UUID) (*domain.DocumentAnalysis, error) {
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
	if !looksEnglish(doc.Transcription) {
		return nil, ErrNotEnglish
	}

	charged, err := s.gems.ChargeForText(ctx, user, doc.Transcription)
	if err != nil {
		return nil, err
	}

	if err := s.documents.UpdateStatus(ctx, documentID, domain.DocumentStatusProcessing); err != nil {
		s.gems.Refund(ctx, user.ID, charged)
		return nil, err
	}

	analysis, err := s.runGeneration(ctx, user, doc)
	if err != nil {
		s.gems.Refund(ctx, user.ID, charged)
		if stErr := s.documents.UpdateStatus(ctx, documentID, domain.DocumentStatusUnprocessed); stErr != nil {
			log.Error("failed to reset document status after analysis failure",
				slog.String("error", stErr.Error()),
				slog.String("document_id", documentID.String()))
		}
		return nil, err
	}

	if err := s.analyses.Create(ctx, analysis); err != nil {
		s.gems.Refund(ctx, user.ID, charged)
		if stErr := s.documents.UpdateStatus(ctx, documentID, domain.DocumentStatusUnprocessed); stErr != nil {
			log.Error("failed to reset document status after persist failure",
				slog.String("error", stErr.Error()),
				slog.String("document_id", documentID.String()))
		}
		return nil, err
	}

	s.cleanupSource(ctx, doc)

	if err := s.documents.UpdateStatus(ctx, documentID, domain.DocumentStatusProcessed); err != nil {
		log.Error("failed to mark document processed",
			slog.String("error", err.Error()),
			slog.String("document_id", documentID.String()))
	}

	log.Info("document analyzed",
		slog.String("document_id", documentID.String()),
		slog.String("user_id", user.ID),
		slog.Int("gems_charged", charged),
		slog.Int("sentences", len(analysis.Translations)))
	return analysis, nil
}

// runGeneration fans the summary and translation calls out together and
// joins the results.
func (s *AnalysisService) runGeneration(ctx context.Context, user *domain.User, doc *domain.UserDocument) (*domain.DocumentAnalysis, error) {
	var (
		wg           sync.WaitGroup
		summary      string
		summaryErr   error
		translations []domain.SentenceTranslation
		translateErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, summaryErr = s.generator.Summarize(ctx, doc.Transcription, user.Plan)
	}()
	go func() {
		defer wg.Done()
		translations, translateErr = s.generator.TranslateSentences(ctx, doc.Transcription, user.Plan)
	}()
	wg.Wait()

	if summaryErr != nil {
		return nil, summaryErr
	}
	if translateErr != nil {
		return nil, translateErr
	}

	return &domain.DocumentAnalysis{
		ID:           uuid.New(),
		DocumentID:   doc.ID,
		UserID:       user.ID,
		Summary:      summary,
		Translations: translations,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// cleanupSource deletes the uploaded source object once its transcription
// has been fully analyzed. Audio stays for playback and text documents
// have no uploaded object worth deleting. Best-effort.
func (s *AnalysisService) cleanupSource(ctx context.Context, doc *domain.UserDocument) {
	if doc.Type == domain.DocumentTypeAudio || doc.Type == domain.DocumentTypeText {
		return
	}
	if s.objects == nil || doc.Path == "" {
		return
	}
	if err := s.objects.Delete(ctx, doc.Path); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to delete source object",
			slog.String("error", err.Error()),
			slog.String("path", doc.Path))
	}
}

// looksEnglish is a cheap language gate: the majority of letters must be
// ASCII for the text to count as English.
func looksEnglish(text string) bool {
	var ascii, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r < 128 {
			ascii++
		}
	}
	if letters == 0 {
		return false
	}
	return ascii*2 > letters
}
