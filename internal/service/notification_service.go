package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

const (
	// notificationChunkSize bounds one batched enqueue write.
	notificationChunkSize = 100
	// notificationChunkDelay paces consecutive chunk writes.
	notificationChunkDelay = 100 * time.Millisecond
)

// NotificationService enqueues push notifications. Delivery is a
// downstream consumer's job; this service owns the queue rows and their
// pending status.
type NotificationService struct {
	notifications store.NotificationStore
	logger        *slog.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications store.NotificationStore, log *slog.Logger) *NotificationService {
	if notifications == nil {
		panic("notifications store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &NotificationService{
		notifications: notifications,
		logger:        log.With(slog.String("component", "notification_service")),
	}
}

// Enqueue queues a single notification.
func (s *NotificationService) Enqueue(ctx context.Context, userID, title, body, screen, createdBy string, data map[string]string) (*domain.Notification, error) {
	n, err := domain.NewNotification(userID, title, body, screen, createdBy, data)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// EnqueueBulk queues many notifications in chunks with a short pacing
// delay between chunks. A failing chunk is logged with its span and the
// remaining chunks are still attempted; the returned count is what
// actually got queued.
func (s *NotificationService) EnqueueBulk(ctx context.Context, notifications []*domain.Notification) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var queued int64
	for start := 0; start < len(notifications); start += notificationChunkSize {
		if start > 0 {
			select {
			case <-time.After(notificationChunkDelay):
			case <-ctx.Done():
				return queued, ctx.Err()
			}
		}

		end := start + notificationChunkSize
		if end > len(notifications) {
			end = len(notifications)
		}

		count, err := s.notifications.CreateBatch(ctx, notifications[start:end])
		queued += count
		if err != nil {
			log.Error("notification chunk failed",
				slog.String("error", err.Error()),
				slog.Int("chunk_start", start),
				slog.Int("chunk_end", end))
			continue
		}
	}

	log.Info("notifications queued",
		slog.Int64("queued", queued),
		slog.Int("requested", len(notifications)))
	return queued, nil
}

// EnqueueForUsers builds one identical notification per user and queues
// them in bulk. Scheduled broadcast jobs use this.
func (s *NotificationService) EnqueueForUsers(ctx context.Context, userIDs []string, title, body, screen, createdBy string) (int64, error) {
	notifications := make([]*domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		n, err := domain.NewNotification(userID, title, body, screen, createdBy, nil)
		if err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Warn("skipping invalid notification",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
			continue
		}
		notifications = append(notifications, n)
	}
	return s.EnqueueBulk(ctx, notifications)
}
