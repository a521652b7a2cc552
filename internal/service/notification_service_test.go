package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
)

func bulkNotifications(n int) []*domain.Notification {
	out := make([]*domain.Notification, 0, n)
	for i := 0; i < n; i++ {
		notification, err := domain.NewNotification(
			fmt.Sprintf("user-%d", i), "title", "body", "home", "test", nil)
		if err != nil {
			panic(err)
		}
		out = append(out, notification)
	}
	return out
}

func TestEnqueueBulkChunks(t *testing.T) {
	t.Parallel()

	notifications := &fakeNotificationStore{}
	svc := NewNotificationService(notifications, nil)

	queued, err := svc.EnqueueBulk(context.Background(), bulkNotifications(250))
	require.NoError(t, err)

	assert.Equal(t, int64(250), queued)
	assert.Equal(t, []int{100, 100, 50}, notifications.batches)
}

func TestEnqueueBulkContinuesPastFailedChunk(t *testing.T) {
	t.Parallel()

	notifications := &fakeNotificationStore{failBatch: 2}
	svc := NewNotificationService(notifications, nil)

	queued, err := svc.EnqueueBulk(context.Background(), bulkNotifications(250))
	require.NoError(t, err)

	// The middle chunk fails; the first and last still land.
	assert.Equal(t, int64(150), queued)
	assert.Equal(t, []int{100, 50}, notifications.batches)
}

func TestEnqueueForUsers(t *testing.T) {
	t.Parallel()

	notifications := &fakeNotificationStore{}
	svc := NewNotificationService(notifications, nil)

	queued, err := svc.EnqueueForUsers(context.Background(),
		[]string{"a", "b", "c"}, "title", "body", "home", "test_job")
	require.NoError(t, err)

	assert.Equal(t, int64(3), queued)
	require.Len(t, notifications.created, 3)
	assert.Equal(t, "a", notifications.created[0].UserID)
	assert.Equal(t, "test_job", notifications.created[0].CreatedBy)
	assert.Equal(t, domain.NotificationStatusPending, notifications.created[0].Status)
}

func TestEnqueueSingle(t *testing.T) {
	t.Parallel()

	notifications := &fakeNotificationStore{}
	svc := NewNotificationService(notifications, nil)

	n, err := svc.Enqueue(context.Background(), "user-1", "Words due", "ephemeral, loan", "word_list", "admin", map[string]string{"count": "2"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", n.UserID)
	assert.Len(t, notifications.created, 1)
}
