package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// MessageStore implements the store.MessageStore interface using PostgreSQL.
type MessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMessageStore creates a new PostgreSQL implementation of the
// MessageStore interface. If logger is nil, a default logger will be used.
func NewMessageStore(db store.DBTX, logger *slog.Logger) *MessageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

var _ store.MessageStore = (*MessageStore)(nil)

// WithTx returns a MessageStore bound to the given transaction.
func (s *MessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return &MessageStore{db: tx, logger: s.logger}
}

const messageColumns = `id, room_id, user_id, role, content, created_at`

// Create implements store.MessageStore.Create.
func (s *MessageStore) Create(ctx context.Context, msg *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	query := `
		INSERT INTO messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.RoomID,
		msg.UserID,
		msg.Role,
		msg.Content,
		msg.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()),
			slog.String("room_id", msg.RoomID.String()))
		return MapError(err)
	}

	return nil
}

// ListByRoom implements store.MessageStore.ListByRoom. Messages are
// returned in ascending creation order.
func (s *MessageStore) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	return s.list(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE room_id = $1 ORDER BY created_at`, roomID)
}

// ListByRoomSince implements store.MessageStore.ListByRoomSince.
func (s *MessageStore) ListByRoomSince(ctx context.Context, roomID uuid.UUID, since time.Time) ([]*domain.Message, error) {
	return s.list(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE room_id = $1 AND created_at > $2 ORDER BY created_at`,
		roomID, since)
}

// DeleteByUser implements store.MessageStore.DeleteByUser.
func (s *MessageStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

func (s *MessageStore) list(ctx context.Context, query string, args ...any) ([]*domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		err := rows.Scan(
			&msg.ID,
			&msg.RoomID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return messages, nil
}
