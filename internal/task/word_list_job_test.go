package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/domain/srs"
)

func savedWord(userID, text string, wordID *uuid.UUID, createdAt time.Time) *domain.UserWord {
	w, err := domain.NewUserWord(userID, text, wordID)
	if err != nil {
		panic(err)
	}
	w.CreatedAt = createdAt
	return w
}

func dictionaryEntry(word, definition string) *domain.DictionaryEntry {
	entry, err := domain.NewDictionaryEntry(word, []domain.Meaning{
		{PartOfSpeech: "noun", Definition: definition},
	})
	if err != nil {
		panic(err)
	}
	return entry
}

func TestWordListJobUpdatesExistingBundles(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)

	entry := dictionaryEntry("ephemeral", "lasting a very short time")
	dict := newFakeDictionaryStore(entry)

	words := &fakeWordStore{}
	// Due: created two days ago, never reviewed. Not due: created an
	// hour ago.
	due := savedWord("user-1", "ephemeral", &entry.ID, now.Add(-48*time.Hour))
	fresh := savedWord("user-1", "brand-new", nil, now.Add(-time.Hour))
	words.words = append(words.words, due, fresh)

	existing := domain.NewDailyTaskBundle("user-1", now.Add(-24*time.Hour))
	tasks := newFakeTaskStore(existing)

	job := NewWordListJob(words, tasks, dict, srs.NewDefaultService(), nil)
	job.now = func() time.Time { return now }

	report, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded())

	list := tasks.updates["user-1"]
	require.Len(t, list, 1)
	assert.Equal(t, "ephemeral", list[0].Word)
	assert.Equal(t, due.ID, list[0].ID)
	assert.Equal(t, []string{"lasting a very short time"}, list[0].Meaning)
	assert.Empty(t, tasks.created)
}

func TestWordListJobCreatesBundleWhenNoneExists(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)

	entry := dictionaryEntry("loan", "a thing borrowed")
	words := &fakeWordStore{}
	words.words = append(words.words, savedWord("user-1", "loan", &entry.ID, now.Add(-72*time.Hour)))
	tasks := newFakeTaskStore()

	job := NewWordListJob(words, tasks, newFakeDictionaryStore(entry), srs.NewDefaultService(), nil)
	job.now = func() time.Time { return now }

	_, err := job.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, tasks.created, 1)
	bundle := tasks.created[0]
	assert.Equal(t, "user-1", bundle.UserID)
	require.Len(t, bundle.WordList, 1)
	assert.Equal(t, "loan", bundle.WordList[0].Word)
	assert.Equal(t, []string{"a thing borrowed"}, bundle.WordList[0].Meaning)
}

func TestWordListJobSkipsWordsWithoutDictionaryLink(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)

	entry := dictionaryEntry("linked", "has a definition")
	words := &fakeWordStore{}
	// Both are due; only the dictionary-linked one has a meaning to show.
	words.words = append(words.words,
		savedWord("user-1", "linked", &entry.ID, now.Add(-48*time.Hour)),
		savedWord("user-1", "unlinked", nil, now.Add(-48*time.Hour)),
	)
	tasks := newFakeTaskStore(domain.NewDailyTaskBundle("user-1", now.Add(-24*time.Hour)))

	job := NewWordListJob(words, tasks, newFakeDictionaryStore(entry), srs.NewDefaultService(), nil)
	job.now = func() time.Time { return now }

	report, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded())

	list := tasks.updates["user-1"]
	require.Len(t, list, 1)
	assert.Equal(t, "linked", list[0].Word)
}

func TestWordListJobSkipsItemOnLookupFailure(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)
	missing := uuid.New()

	entry := dictionaryEntry("plain", "simple, ordinary")
	words := &fakeWordStore{}
	words.words = append(words.words,
		savedWord("user-1", "orphaned", &missing, now.Add(-48*time.Hour)),
		savedWord("user-1", "plain", &entry.ID, now.Add(-48*time.Hour)),
	)
	tasks := newFakeTaskStore(domain.NewDailyTaskBundle("user-1", now.Add(-24*time.Hour)))

	job := NewWordListJob(words, tasks, newFakeDictionaryStore(entry), srs.NewDefaultService(), nil)
	job.now = func() time.Time { return now }

	report, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded())

	list := tasks.updates["user-1"]
	require.Len(t, list, 1)
	assert.Equal(t, "plain", list[0].Word)
}
