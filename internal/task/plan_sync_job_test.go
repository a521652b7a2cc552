package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
)

func subscriptionWith(userID, expires string) *domain.Subscription {
	return &domain.Subscription{
		UserID: userID,
		Entitlements: map[string]domain.Entitlement{
			domain.EntitlementPro: {ProductID: "pro_monthly", ExpiresDate: expires},
		},
	}
}

func TestPlanSyncJob(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	created := now.Add(-90 * 24 * time.Hour)

	users := newFakeUserStore(
		testUser("active", domain.PlanFree, created),
		testUser("lapsed", domain.PlanPro, created),
		testUser("garbled", domain.PlanPro, created),
		testUser("bare", domain.PlanPro, created),
	)
	subs := &fakeSubscriptionStore{subs: []*domain.Subscription{
		subscriptionWith("active", now.Add(24*time.Hour).Format(time.RFC3339)),
		subscriptionWith("lapsed", now.Add(-24*time.Hour).Format(time.RFC3339)),
		subscriptionWith("garbled", "not-a-date"),
		{UserID: "bare", Entitlements: map[string]domain.Entitlement{}},
		subscriptionWith("ghost", now.Add(24*time.Hour).Format(time.RFC3339)),
	}}

	job := NewPlanSyncJob(users, subs, nil)
	job.now = func() time.Time { return now }

	report, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Succeeded())
	assert.Equal(t, 0, report.Failed())

	assert.Equal(t, domain.PlanPro, users.users["active"].Plan)
	assert.Equal(t, domain.PlanFree, users.users["lapsed"].Plan)
	assert.Equal(t, domain.PlanFree, users.users["garbled"].Plan)
	assert.Equal(t, domain.PlanFree, users.users["bare"].Plan)
}

func TestPlanSyncJobNoChangeNoWrite(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	users := newFakeUserStore(testUser("steady", domain.PlanPro, now.Add(-time.Hour)))
	subs := &fakeSubscriptionStore{subs: []*domain.Subscription{
		subscriptionWith("steady", now.Add(24*time.Hour).Format(time.RFC3339)),
	}}

	job := NewPlanSyncJob(users, subs, nil)
	job.now = func() time.Time { return now }

	_, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users.updated)
}
