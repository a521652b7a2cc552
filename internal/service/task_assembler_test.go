package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
)

func sampleQuiz(question string) domain.Quiz {
	return domain.Quiz{
		Question: question,
		Options:  []string{"a", "b", "c", "d"},
		Answer:   1,
	}
}

func samplePassage(text string, questions int) *domain.PassageTask {
	p := &domain.PassageTask{Text: text}
	for i := 0; i < questions; i++ {
		p.Questions = append(p.Questions, sampleQuiz(text))
	}
	return p
}

func sampleGrammarList(n int) []domain.GrammarQuiz {
	var list []domain.GrammarQuiz
	for i := 0; i < n; i++ {
		list = append(list, domain.GrammarQuiz{Quiz: sampleQuiz("q"), RoomID: uuid.New()})
	}
	return list
}

func TestAssembleBundleFresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	content := BundleContent{
		WordList:    []domain.WordListItem{{ID: uuid.New(), Word: "ephemeral", Meaning: []string{"lasting a short time"}}},
		GrammarList: sampleGrammarList(4),
		Reading:     samplePassage("reading", 3),
		Listening:   samplePassage("listening", 3),
	}

	bundle := AssembleBundle(nil, content, AllRegenFlags(), "user-1", now)

	require.NoError(t, bundle.Validate())
	assert.Equal(t, "2026-03-14", bundle.Date)
	assert.Empty(t, bundle.IsCompleted)

	// Every question-bearing category gets an answers slice matching its
	// content length; the word list gets none.
	assert.Equal(t, []int{-1, -1, -1, -1}, bundle.Answers[domain.CategoryGrammar])
	assert.Equal(t, []int{-1, -1, -1}, bundle.Answers[domain.CategoryReading])
	assert.Equal(t, []int{-1, -1, -1}, bundle.Answers[domain.CategoryListening])
	assert.NotContains(t, bundle.Answers, "word_list")
}

func TestAssembleBundleMergePreservesUnflagged(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	existingReading := samplePassage("old reading", 3)
	existing := domain.NewDailyTaskBundle("user-1", now.Add(-24*time.Hour))
	existing.WordList = []domain.WordListItem{{ID: uuid.New(), Word: "keep"}}
	existing.GrammarList = sampleGrammarList(2)
	existing.Reading = existingReading
	existing.Listening = samplePassage("old listening", 3)
	existing.Answers = map[string][]int{
		domain.CategoryGrammar:   {0, 1},
		domain.CategoryReading:   {2, -1, 0},
		domain.CategoryListening: {-1, -1, -1},
	}
	existing.IsCompleted = []string{domain.CategoryGrammar}

	content := BundleContent{GrammarList: sampleGrammarList(5)}
	flags := RegenFlagsFor(existing.IsCompleted)

	bundle := AssembleBundle(existing, content, flags, "user-1", now)

	require.NoError(t, bundle.Validate())

	// Only grammar was flagged: its content is replaced and its answers
	// reset, while everything else carries over byte-identical.
	assert.Len(t, bundle.GrammarList, 5)
	assert.Equal(t, []int{-1, -1, -1, -1, -1}, bundle.Answers[domain.CategoryGrammar])
	assert.Same(t, existingReading, bundle.Reading)
	assert.Equal(t, existing.WordList, bundle.WordList)
	assert.Equal(t, existing.Listening, bundle.Listening)
	assert.Equal(t, []int{2, -1, 0}, bundle.Answers[domain.CategoryReading])
	assert.Equal(t, []int{-1, -1, -1}, bundle.Answers[domain.CategoryListening])

	// Completion markers are consumed by the regeneration.
	assert.Empty(t, bundle.IsCompleted)
	assert.NotEqual(t, existing.ID, bundle.ID)
	assert.True(t, bundle.CreatedAt.After(existing.CreatedAt))
}

func TestAssembleBundleMergeKeepsFlaggedWithoutContent(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	existingReading := samplePassage("old reading", 3)
	existingListening := samplePassage("old listening", 2)
	existing := domain.NewDailyTaskBundle("user-1", now.Add(-24*time.Hour))
	existing.Reading = existingReading
	existing.Listening = existingListening
	existing.Answers = map[string][]int{
		domain.CategoryReading:   {1, 1, 1},
		domain.CategoryListening: {0, 2},
	}

	// Both passages are flagged for regeneration but generation produced
	// nothing, as happens for listening on every free plan. The old
	// passages and their answers survive.
	bundle := AssembleBundle(existing, BundleContent{},
		RegenFlags{Reading: true, Listening: true}, "user-1", now)

	require.NoError(t, bundle.Validate())
	assert.Same(t, existingReading, bundle.Reading)
	assert.Same(t, existingListening, bundle.Listening)
	assert.Equal(t, []int{1, 1, 1}, bundle.Answers[domain.CategoryReading])
	assert.Equal(t, []int{0, 2}, bundle.Answers[domain.CategoryListening])
}

func TestRegenFlagsFor(t *testing.T) {
	t.Parallel()

	flags := RegenFlagsFor([]string{domain.CategoryGrammar, domain.CategoryListening})
	assert.True(t, flags.GrammarList)
	assert.True(t, flags.Listening)
	assert.False(t, flags.Reading)
	assert.False(t, flags.WordList)
	assert.True(t, flags.Any())

	assert.False(t, RegenFlagsFor(nil).Any())
}

func TestTextGemCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, TextGemCost(""))
	assert.Equal(t, 1, TextGemCost("one"))
	assert.Equal(t, 1, TextGemCost("a b c d e f g h i j"))
	assert.Equal(t, 2, TextGemCost("a b c d e f g h i j k"))
}
