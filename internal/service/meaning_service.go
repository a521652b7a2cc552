package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// exampleSeedWords is how many of the user's other saved words are woven
// into generated example sentences.
const exampleSeedWords = 3

// WordMeaning is the full result of looking a word up in context: the
// resolved base form with its role in the sentence, the shared dictionary
// entry, and per-meaning example sentences.
type WordMeaning struct {
	Analysis generation.WordAnalysis `json:"analysis"`
	Entry    *domain.DictionaryEntry `json:"entry"`
	Examples [][]string              `json:"examples"`
}

// MeaningService resolves a word found in a sentence to dictionary
// content. The shared dictionary is a cache across users: an existing
// entry is reused, a missing one is generated and stored.
type MeaningService struct {
	generator  generation.Generator
	dictionary store.DictionaryStore
	words      store.WordStore
	logger     *slog.Logger
}

// NewMeaningService creates a MeaningService.
func NewMeaningService(
	generator generation.Generator,
	dictionary store.DictionaryStore,
	words store.WordStore,
	log *slog.Logger,
) *MeaningService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MeaningService{
		generator:  generator,
		dictionary: dictionary,
		words:      words,
		logger:     log.With(slog.String("component", "meaning_service")),
	}
}

// Generate analyzes the word in its sentence, resolves the dictionary
// entry for the base form, and generates example sentences seeded with a
// few of the user's other saved words.
func (s *MeaningService) Generate(ctx context.Context, user *domain.User, word, sentence string) (*WordMeaning, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	analysis, err := s.generator.AnalyzeWord(ctx, word, sentence, user.Plan)
	if err != nil {
		return nil, err
	}

	// The dictionary lookup and the seed-word fetch are independent.
	var (
		wg       sync.WaitGroup
		entry    *domain.DictionaryEntry
		entryErr error
		seeds    []string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		entry, entryErr = s.resolveEntry(ctx, analysis.BaseWord, user.Plan)
	}()
	go func() {
		defer wg.Done()
		seeds = s.seedWords(ctx, user.ID, analysis.BaseWord)
	}()
	wg.Wait()

	if entryErr != nil {
		return nil, entryErr
	}

	examples, err := s.generator.Examples(ctx, analysis.BaseWord, entry.Meanings, seeds, user.Plan)
	if err != nil {
		// Examples are an enrichment; the lookup result stands without
		// them.
		log.Warn("example generation failed",
			slog.String("error", err.Error()),
			slog.String("word", analysis.BaseWord))
		examples = nil
	}

	return &WordMeaning{
		Analysis: *analysis,
		Entry:    entry,
		Examples: examples,
	}, nil
}

// resolveEntry returns the dictionary entry for the base word, generating
// and storing one when the dictionary has no entry yet.
func (s *MeaningService) resolveEntry(ctx context.Context, baseWord string, plan domain.Plan) (*domain.DictionaryEntry, error) {
	entry, err := s.dictionary.GetByWord(ctx, baseWord)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, store.ErrDictionaryNotFound) {
		return nil, err
	}

	draft, err := s.generator.DictionaryEntry(ctx, baseWord, plan)
	if err != nil {
		return nil, err
	}

	entry, err = domain.NewDictionaryEntry(baseWord, draft.Meanings)
	if err != nil {
		return nil, err
	}
	entry.Pronunciation = draft.Pronunciation
	entry.Derivatives = draft.Derivatives
	entry.Etymology = draft.Etymology

	if err := s.dictionary.Create(ctx, entry); err != nil {
		// Another request generated the same word first; use its entry.
		if errors.Is(err, store.ErrWordExists) {
			return s.dictionary.GetByWord(ctx, baseWord)
		}
		return nil, err
	}
	return entry, nil
}

// seedWords picks a few of the user's other saved words for example
// generation. Failure here only costs seeding, never the request.
func (s *MeaningService) seedWords(ctx context.Context, userID, exclude string) []string {
	saved, err := s.words.ListRandomByUser(ctx, userID, exampleSeedWords+1)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("seed word fetch failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil
	}

	var seeds []string
	for _, w := range saved {
		if w.Word == exclude {
			continue
		}
		seeds = append(seeds, w.Word)
		if len(seeds) == exampleSeedWords {
			break
		}
	}
	return seeds
}
