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

// RoomStore implements the store.RoomStore interface using PostgreSQL.
type RoomStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRoomStore creates a new PostgreSQL implementation of the RoomStore
// interface. If logger is nil, a default logger will be used.
func NewRoomStore(db store.DBTX, logger *slog.Logger) *RoomStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RoomStore{
		db:     db,
		logger: logger.With(slog.String("component", "room_store")),
	}
}

var _ store.RoomStore = (*RoomStore)(nil)

// WithTx returns a RoomStore bound to the given transaction.
func (s *RoomStore) WithTx(tx *sql.Tx) store.RoomStore {
	return &RoomStore{db: tx, logger: s.logger}
}

const roomColumns = `id, user_id, title, abstract, document_id, stage, review_data, created_at, updated_at`

// Create implements store.RoomStore.Create.
func (s *RoomStore) Create(ctx context.Context, room *domain.UserRoom) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := room.Validate(); err != nil {
		log.Warn("room validation failed during create",
			slog.String("error", err.Error()),
			slog.String("room_id", room.ID.String()))
		return err
	}

	reviewData, err := jsonbValue(room.ReviewData)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		room.ID,
		room.UserID,
		room.Title,
		room.Abstract,
		room.DocumentID,
		room.Stage,
		reviewData,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create room",
			slog.String("error", err.Error()),
			slog.String("room_id", room.ID.String()),
			slog.String("user_id", room.UserID))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.RoomStore.GetByID.
// Returns store.ErrRoomNotFound if the room does not exist.
func (s *RoomStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserRoom, error) {
	query := `SELECT ` + roomColumns + ` FROM user_rooms WHERE id = $1`

	room, err := s.scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrRoomNotFound
		}
		return nil, MapError(err)
	}
	return room, nil
}

// ListByUser implements store.RoomStore.ListByUser.
func (s *RoomStore) ListByUser(ctx context.Context, userID string) ([]*domain.UserRoom, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM user_rooms WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var rooms []*domain.UserRoom
	for rows.Next() {
		room, err := s.scanRoom(rows)
		if err != nil {
			return nil, MapError(err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return rooms, nil
}

// UpdateStage implements store.RoomStore.UpdateStage.
// Returns store.ErrRoomNotFound if the room does not exist.
func (s *RoomStore) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE user_rooms SET stage = $2, updated_at = NOW() WHERE id = $1`, id, stage)
	if err != nil {
		log.Error("failed to update room stage",
			slog.String("error", err.Error()),
			slog.String("room_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, "room")
}

// DeleteByUser implements store.RoomStore.DeleteByUser.
func (s *RoomStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_rooms WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

func (s *RoomStore) scanRoom(row rowScanner) (*domain.UserRoom, error) {
	var (
		room       domain.UserRoom
		reviewData []byte
	)
	err := row.Scan(
		&room.ID,
		&room.UserID,
		&room.Title,
		&room.Abstract,
		&room.DocumentID,
		&room.Stage,
		&reviewData,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := scanJSONB(reviewData, &room.ReviewData); err != nil {
		return nil, err
	}

	return &room, nil
}
