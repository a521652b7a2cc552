package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// reminderWordCount caps how many words appear in a reminder body.
const reminderWordCount = 5

// WordListReminderJob nudges each user with a sample of today's due
// words. Users whose current word list is empty are skipped.
type WordListReminderJob struct {
	tasks         store.TaskStore
	notifications *service.NotificationService
	logger        *slog.Logger
}

// NewWordListReminderJob creates the word-list reminder job.
func NewWordListReminderJob(tasks store.TaskStore, notifications *service.NotificationService, log *slog.Logger) *WordListReminderJob {
	if log == nil {
		log = slog.Default()
	}
	return &WordListReminderJob{
		tasks:         tasks,
		notifications: notifications,
		logger:        log.With(slog.String("component", "word_list_reminder_job")),
	}
}

// Name implements Job.
func (j *WordListReminderJob) Name() string { return "word_list_reminder" }

// Run implements Job. One Result per user with a non-empty word list.
func (j *WordListReminderJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport(j.Name())

	bundles, err := j.tasks.ListCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list current bundles: %w", err)
	}

	for _, bundle := range bundles {
		if len(bundle.WordList) == 0 {
			continue
		}

		words := make([]string, 0, reminderWordCount)
		for _, item := range bundle.WordList {
			words = append(words, item.Word)
			if len(words) == reminderWordCount {
				break
			}
		}

		_, err := j.notifications.Enqueue(ctx, bundle.UserID,
			"Words due for review",
			fmt.Sprintf("Still on today's list: %s", strings.Join(words, ", ")),
			"word_list", j.Name(), nil)
		report.Record(bundle.UserID, err)
	}

	return report.Finish(), nil
}
