package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// monthlyGemAmount is the free-plan monthly grant.
const monthlyGemAmount = 100

// MonthlyGemsJob grants every free-plan user their monthly gems and
// announces the grant to the whole population. The announcement is a
// courtesy; its failure never claws back a grant.
type MonthlyGemsJob struct {
	users         store.UserStore
	notifications *service.NotificationService
	logger        *slog.Logger
}

// NewMonthlyGemsJob creates the monthly gem grant job.
func NewMonthlyGemsJob(users store.UserStore, notifications *service.NotificationService, log *slog.Logger) *MonthlyGemsJob {
	if log == nil {
		log = slog.Default()
	}
	return &MonthlyGemsJob{
		users:         users,
		notifications: notifications,
		logger:        log.With(slog.String("component", "monthly_gems_job")),
	}
}

// Name implements Job.
func (j *MonthlyGemsJob) Name() string { return "monthly_gems" }

// Run implements Job. One Result per free-plan user.
func (j *MonthlyGemsJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport(j.Name())

	freeUsers, err := j.users.ListByPlan(ctx, domain.PlanFree)
	if err != nil {
		return nil, fmt.Errorf("failed to list free-plan users: %w", err)
	}

	for _, u := range freeUsers {
		_, err := j.users.AdjustGems(ctx, u.ID, monthlyGemAmount)
		report.Record(u.ID, err)
	}

	j.announce(ctx)

	return report.Finish(), nil
}

func (j *MonthlyGemsJob) announce(ctx context.Context) {
	allUsers, err := j.users.List(ctx)
	if err != nil {
		j.logger.Error("failed to list users for gem announcement",
			slog.String("error", err.Error()))
		return
	}

	userIDs := make([]string, 0, len(allUsers))
	for _, u := range allUsers {
		userIDs = append(userIDs, u.ID)
	}

	queued, err := j.notifications.EnqueueForUsers(ctx, userIDs,
		"Monthly gems have arrived!",
		fmt.Sprintf("Free-plan learners just received %d gems. Enjoy!", monthlyGemAmount),
		"home", j.Name())
	if err != nil {
		j.logger.Error("gem announcement failed",
			slog.String("error", err.Error()),
			slog.Int64("queued", queued))
	}
}
