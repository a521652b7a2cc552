package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/domain/srs"
	"github.com/lingosavor/savor-api/internal/store"
)

// WordListJob refreshes every user's daily word list: all saved words are
// run through the retention heuristic and the due ones, with their
// dictionary definitions, replace the word list on the user's current
// bundle.
type WordListJob struct {
	words      store.WordStore
	tasks      store.TaskStore
	dictionary store.DictionaryStore
	srs        srs.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewWordListJob creates the word-list refresh job.
func NewWordListJob(
	words store.WordStore,
	tasks store.TaskStore,
	dictionary store.DictionaryStore,
	srsService srs.Service,
	log *slog.Logger,
) *WordListJob {
	if log == nil {
		log = slog.Default()
	}
	return &WordListJob{
		words:      words,
		tasks:      tasks,
		dictionary: dictionary,
		srs:        srsService,
		logger:     log.With(slog.String("component", "word_list_job")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Name implements Job.
func (j *WordListJob) Name() string { return "word_list_refresh" }

// Run implements Job. One Result per user with saved words.
func (j *WordListJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport(j.Name())
	now := j.now()

	allWords, err := j.words.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	byUser := make(map[string][]*domain.UserWord)
	for _, w := range allWords {
		byUser[w.UserID] = append(byUser[w.UserID], w)
	}

	for userID, items := range byUser {
		list := buildWordList(ctx, j.dictionary, j.srs, now, items, j.logger)
		report.Record(userID, j.upsertWordList(ctx, userID, list, now))
	}

	return report.Finish(), nil
}

// upsertWordList replaces the word list on the user's existing bundles,
// all of them if stale ones are lingering, or creates a fresh bundle when
// the user has none.
func (j *WordListJob) upsertWordList(ctx context.Context, userID string, list []domain.WordListItem, now time.Time) error {
	updated, err := j.tasks.UpdateWordList(ctx, userID, list)
	if err != nil {
		return err
	}
	if updated > 0 {
		return nil
	}

	if len(list) == 0 {
		return nil
	}

	bundle := domain.NewDailyTaskBundle(userID, now)
	bundle.WordList = list
	return j.tasks.Create(ctx, bundle)
}

// buildWordList filters items through the retention heuristic and
// resolves dictionary definitions for the due ones. Only words linked to
// a dictionary entry make the list; there is no definition to show for
// the rest. A failed dictionary lookup skips that item with a warning; it
// never fails the user.
func buildWordList(
	ctx context.Context,
	dictionary store.DictionaryStore,
	srsService srs.Service,
	now time.Time,
	items []*domain.UserWord,
	log *slog.Logger,
) []domain.WordListItem {
	var list []domain.WordListItem
	for _, item := range items {
		if item.WordID == nil {
			continue
		}
		if !srsService.IsDue(now, item.CreatedAt, item.Answers) {
			continue
		}

		entry, err := dictionary.GetByID(ctx, *item.WordID)
		if err != nil {
			log.Warn("dictionary lookup failed, skipping word",
				slog.String("error", err.Error()),
				slog.String("word", item.Word),
				slog.String("user_id", item.UserID))
			continue
		}

		list = append(list, domain.WordListItem{
			ID:      item.ID,
			Word:    item.Word,
			Meaning: entry.Definitions(),
		})
	}
	return list
}
