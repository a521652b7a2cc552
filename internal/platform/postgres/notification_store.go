package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// NotificationStore implements the store.NotificationStore interface using
// PostgreSQL.
type NotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNotificationStore creates a new PostgreSQL implementation of the
// NotificationStore interface. If logger is nil, a default logger will be
// used.
func NewNotificationStore(db store.DBTX, logger *slog.Logger) *NotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*NotificationStore)(nil)

// WithTx returns a NotificationStore bound to the given transaction.
func (s *NotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &NotificationStore{db: tx, logger: s.logger}
}

const notificationColumns = `id, user_id, title, body, screen, data, status, created_by, error, created_at, sent_at`

// Create implements store.NotificationStore.Create.
func (s *NotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := n.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", n.ID.String()))
		return err
	}

	data, err := jsonbValue(n.Data)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		n.ID,
		n.UserID,
		n.Title,
		n.Body,
		n.Screen,
		data,
		n.Status,
		n.CreatedBy,
		n.Error,
		n.CreatedAt,
		n.SentAt,
	)
	if err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", n.ID.String()))
		return MapError(err)
	}

	return nil
}

// CreateBatch implements store.NotificationStore.CreateBatch. Rows are
// inserted one statement at a time; callers wrap this in a transaction
// when atomicity matters.
func (s *NotificationStore) CreateBatch(ctx context.Context, notifications []*domain.Notification) (int64, error) {
	var created int64
	for _, n := range notifications {
		if err := s.Create(ctx, n); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// MarkSent implements store.NotificationStore.MarkSent.
func (s *NotificationStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notifications
		SET status = $2, sent_at = NOW(), error = ''
		WHERE id = $1
	`, id, domain.NotificationStatusSent)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "notification")
}

// MarkFailed implements store.NotificationStore.MarkFailed.
func (s *NotificationStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notifications
		SET status = $2, error = $3
		WHERE id = $1
	`, id, domain.NotificationStatusFailed, reason)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "notification")
}

// ListPending implements store.NotificationStore.ListPending. Oldest
// pending rows come first.
func (s *NotificationStore) ListPending(ctx context.Context, limit int) ([]*domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`, domain.NotificationStatusPending, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := s.scanNotification(rows)
		if err != nil {
			return nil, MapError(err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return notifications, nil
}

// DeleteByUser implements store.NotificationStore.DeleteByUser.
func (s *NotificationStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

func (s *NotificationStore) scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n    domain.Notification
		data []byte
	)
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Body,
		&n.Screen,
		&data,
		&n.Status,
		&n.CreatedBy,
		&n.Error,
		&n.CreatedAt,
		&n.SentAt,
	)
	if err != nil {
		return nil, err
	}

	if err := scanJSONB(data, &n.Data); err != nil {
		return nil, err
	}

	return &n, nil
}
