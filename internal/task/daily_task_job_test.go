package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/domain/srs"
	"github.com/lingosavor/savor-api/internal/generation"
)

func newTestDailyTaskJob(users *fakeUserStore, tasks *fakeTaskStore, words *fakeWordStore) *DailyTaskJob {
	return NewDailyTaskJob(
		users, tasks, words,
		&fakeRoomStore{}, &fakeMessageStore{}, newFakeDictionaryStore(),
		srs.NewDefaultService(), &fakeGenerator{}, nil, nil, nil,
	)
}

func TestComputeTargets(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	created := now.Add(-30 * 24 * time.Hour)

	fresh := testUser("fresh", domain.PlanFree, created)
	done := testUser("done", domain.PlanPro, created)
	idle := testUser("idle", domain.PlanFree, created)

	doneBundle := domain.NewDailyTaskBundle("done", now.Add(-24*time.Hour))
	doneBundle.IsCompleted = []string{domain.CategoryReading}
	idleBundle := domain.NewDailyTaskBundle("idle", now.Add(-24*time.Hour))

	users := newFakeUserStore(fresh, done, idle)
	tasks := newFakeTaskStore(doneBundle, idleBundle)

	job := newTestDailyTaskJob(users, tasks, &fakeWordStore{})

	targets, err := job.computeTargets(context.Background())
	require.NoError(t, err)

	byID := make(map[string]targetUser)
	for _, tg := range targets {
		byID[tg.user.ID] = tg
	}
	require.Len(t, byID, 2)

	// No bundle at all: everything regenerates, seeded from account age.
	freshTarget := byID["fresh"]
	assert.Nil(t, freshTarget.bundle)
	assert.Equal(t, created, freshTarget.lastReviewed)
	assert.True(t, freshTarget.flags.WordList)
	assert.True(t, freshTarget.flags.GrammarList)
	assert.True(t, freshTarget.flags.Reading)
	assert.True(t, freshTarget.flags.Listening)

	// Completed categories only, seeded from the bundle's age.
	doneTarget := byID["done"]
	require.NotNil(t, doneTarget.bundle)
	assert.Equal(t, doneBundle.CreatedAt, doneTarget.lastReviewed)
	assert.True(t, doneTarget.flags.Reading)
	assert.False(t, doneTarget.flags.GrammarList)
	assert.False(t, doneTarget.flags.Listening)
	assert.False(t, doneTarget.flags.WordList)

	// A current bundle with nothing completed is left alone.
	assert.NotContains(t, byID, "idle")
}

func TestRunSkipsUncreatedUserWithNoContent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	users := newFakeUserStore(testUser("fresh", domain.PlanFree, now.Add(-24*time.Hour)))
	tasks := newFakeTaskStore()

	// No saved words and no rooms: every category comes out empty, so no
	// bundle row is written for the first-time user.
	job := newTestDailyTaskJob(users, tasks, &fakeWordStore{})
	job.now = func() time.Time { return now }

	report, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded())
	assert.Empty(t, tasks.created)
	assert.Empty(t, tasks.bundles["fresh"])
}

func TestRunReplacesBundleForCompletedUser(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	users := newFakeUserStore(testUser("done", domain.PlanPro, now.Add(-30*24*time.Hour)))

	old := domain.NewDailyTaskBundle("done", now.Add(-24*time.Hour))
	old.Reading = &domain.PassageTask{Text: "yesterday's passage"}
	old.IsCompleted = []string{domain.CategoryReading}
	tasks := newFakeTaskStore(old)

	words := &fakeWordStore{}
	topic := savedWord("done", "ephemeral", nil, now.Add(-48*time.Hour))
	topic.Stage = domain.StageReading
	words.words = append(words.words, topic)

	job := newTestDailyTaskJob(users, tasks, words)
	job.now = func() time.Time { return now }

	report, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded())

	// The old bundle is deleted before the regenerated one is inserted, so
	// at most one current bundle survives per user.
	assert.Equal(t, []string{"done"}, tasks.deleted)
	require.Len(t, tasks.created, 1)

	replacement := tasks.created[0]
	require.Len(t, tasks.bundles["done"], 1)
	assert.Same(t, replacement, tasks.bundles["done"][0])
	assert.NotEqual(t, old.ID, replacement.ID)
	require.NotNil(t, replacement.Reading)
	assert.Equal(t, "a generated passage", replacement.Reading.Text)
	assert.Equal(t, []int{-1}, replacement.Answers[domain.CategoryReading])
	assert.Empty(t, replacement.IsCompleted)
}

func TestSelectTopicsTiering(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	job := newTestDailyTaskJob(newFakeUserStore(), newFakeTaskStore(), &fakeWordStore{})

	reading := func(word string, reviews int) *domain.UserWord {
		w := savedWord("user-1", word, nil, now)
		w.Stage = domain.StageReading
		for i := 0; i < reviews; i++ {
			w.ReviewData.Record(domain.ModalityReading, now)
		}
		return w
	}

	words := []*domain.UserWord{
		reading("thrice", 3),
		reading("once-a", 1),
		reading("never-a", 0),
		reading("once-b", 1),
		reading("never-b", 0),
		reading("twice", 2),
	}
	listening := savedWord("user-1", "wrong-stage", nil, now)
	listening.Stage = domain.StageListening
	words = append(words, listening)

	topics := job.selectTopics(words, nil, generation.PassageReading)

	require.Len(t, topics, 5)
	// Never-reviewed items fill the first tier, then once-reviewed.
	assert.ElementsMatch(t, []string{"never-a", "never-b"}, topics[:2])
	assert.ElementsMatch(t, []string{"once-a", "once-b"}, topics[2:4])
	assert.Contains(t, []string{"twice", "thrice"}, topics[4])
	assert.NotContains(t, topics, "wrong-stage")
}

func TestSelectTopicsIncludesRooms(t *testing.T) {
	t.Parallel()

	job := newTestDailyTaskJob(newFakeUserStore(), newFakeTaskStore(), &fakeWordStore{})

	room, err := domain.NewUserRoom("user-1", "Ordering coffee", "a cafe conversation", nil)
	require.NoError(t, err)
	room.Stage = domain.StageListening

	topics := job.selectTopics(nil, []*domain.UserRoom{room}, generation.PassageListening)
	assert.Equal(t, []string{"Ordering coffee"}, topics)

	// Same room contributes nothing to the reading modality.
	assert.Empty(t, job.selectTopics(nil, []*domain.UserRoom{room}, generation.PassageReading))
}

func TestSelectTopicsEmptyMeansSkip(t *testing.T) {
	t.Parallel()

	job := newTestDailyTaskJob(newFakeUserStore(), newFakeTaskStore(), &fakeWordStore{})
	assert.Empty(t, job.selectTopics(nil, nil, generation.PassageReading))
}
