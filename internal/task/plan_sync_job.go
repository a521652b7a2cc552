package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/store"
)

// PlanSyncJob reconciles each user's plan with their subscription
// provider record: an unexpired pro entitlement means "pro", everything
// else, including unparseable expiry dates, means "free".
type PlanSyncJob struct {
	users         store.UserStore
	subscriptions store.SubscriptionStore
	logger        *slog.Logger
	now           func() time.Time
}

// NewPlanSyncJob creates the plan sync job.
func NewPlanSyncJob(users store.UserStore, subscriptions store.SubscriptionStore, log *slog.Logger) *PlanSyncJob {
	if log == nil {
		log = slog.Default()
	}
	return &PlanSyncJob{
		users:         users,
		subscriptions: subscriptions,
		logger:        log.With(slog.String("component", "plan_sync_job")),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Name implements Job.
func (j *PlanSyncJob) Name() string { return "plan_sync" }

// Run implements Job. One Result per subscription record.
func (j *PlanSyncJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport(j.Name())
	now := j.now()

	subs, err := j.subscriptions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	for _, sub := range subs {
		plan, err := sub.PlanAt(now)
		if err != nil {
			// Unparseable expiry dates demote to free rather than
			// leaving a possibly lapsed pro plan in place.
			j.logger.Warn("invalid entitlement expiry, treating as inactive",
				slog.String("error", err.Error()),
				slog.String("user_id", sub.UserID))
		}

		report.Record(sub.UserID, j.syncUser(ctx, sub.UserID, plan))
	}

	return report.Finish(), nil
}

func (j *PlanSyncJob) syncUser(ctx context.Context, userID string, plan domain.Plan) error {
	user, err := j.users.GetByID(ctx, userID)
	if err != nil {
		// A subscription record can outlive its deleted user; not worth
		// failing the unit over.
		if errors.Is(err, store.ErrUserNotFound) {
			j.logger.Warn("subscription references missing user",
				slog.String("user_id", userID))
			return nil
		}
		return err
	}

	if user.Plan == plan {
		return nil
	}

	user.Plan = plan
	if err := j.users.Update(ctx, user); err != nil {
		return err
	}

	j.logger.Info("plan updated",
		slog.String("user_id", userID),
		slog.String("plan", string(plan)))
	return nil
}
