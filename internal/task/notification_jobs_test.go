package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/service"
)

func TestMonthlyGemsJobCreditsFreeUsers(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	users := newFakeUserStore(
		testUser("free-1", domain.PlanFree, now),
		testUser("free-2", domain.PlanFree, now),
		testUser("pro-1", domain.PlanPro, now),
	)
	notifications := &fakeNotificationStore{}
	job := NewMonthlyGemsJob(users, service.NewNotificationService(notifications, nil), nil)

	report, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, monthlyGemAmount, users.gemAdjusted["free-1"])
	assert.Equal(t, monthlyGemAmount, users.gemAdjusted["free-2"])
	assert.Zero(t, users.gemAdjusted["pro-1"])

	// The announcement goes to everyone, plan regardless.
	assert.Len(t, notifications.created, 3)
}

func TestDailyReminderJobBroadcasts(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	users := newFakeUserStore(
		testUser("u1", domain.PlanFree, now),
		testUser("u2", domain.PlanPro, now),
	)
	notifications := &fakeNotificationStore{}
	job := NewDailyReminderJob(users, service.NewNotificationService(notifications, nil), nil)

	report, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Failed())
	require.Len(t, notifications.created, 2)
	assert.Equal(t, "tasks", notifications.created[0].Screen)
}

func TestWordListReminderJobSkipsEmptyLists(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	full := domain.NewDailyTaskBundle("u1", now)
	for _, w := range []string{"ephemeral", "loan", "brisk", "vivid", "keen", "stern"} {
		full.WordList = append(full.WordList, domain.WordListItem{Word: w})
	}
	empty := domain.NewDailyTaskBundle("u2", now)

	tasks := newFakeTaskStore(full, empty)
	notifications := &fakeNotificationStore{}
	job := NewWordListReminderJob(tasks, service.NewNotificationService(notifications, nil), nil)

	report, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded())
	require.Len(t, notifications.created, 1)
	assert.Equal(t, "u1", notifications.created[0].UserID)
	assert.Equal(t, "word_list", notifications.created[0].Screen)

	// Body carries at most five words.
	body := notifications.created[0].Body
	assert.Contains(t, body, "ephemeral")
	assert.Contains(t, body, "keen")
	assert.NotContains(t, body, "stern")
}
