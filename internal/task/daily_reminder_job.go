package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// DailyReminderJob broadcasts the evening study reminder to every user.
type DailyReminderJob struct {
	users         store.UserStore
	notifications *service.NotificationService
	logger        *slog.Logger
}

// NewDailyReminderJob creates the daily reminder job.
func NewDailyReminderJob(users store.UserStore, notifications *service.NotificationService, log *slog.Logger) *DailyReminderJob {
	if log == nil {
		log = slog.Default()
	}
	return &DailyReminderJob{
		users:         users,
		notifications: notifications,
		logger:        log.With(slog.String("component", "daily_reminder_job")),
	}
}

// Name implements Job.
func (j *DailyReminderJob) Name() string { return "daily_reminder" }

// Run implements Job.
func (j *DailyReminderJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport(j.Name())

	users, err := j.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	queued, err := j.notifications.EnqueueForUsers(ctx, userIDs,
		"Today's tasks are waiting",
		"A few minutes of practice keeps your streak alive. Jump back in!",
		"tasks", j.Name())
	report.Record("broadcast", err)

	j.logger.Info("daily reminder queued", slog.Int64("queued", queued))
	return report.Finish(), nil
}
