package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. It accepts a database connection or transaction managed by
// the caller. If logger is nil, a default logger will be used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// WithTx returns a UserStore bound to the given transaction.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

const userColumns = `id, email, display_name, user_name, plan, gems, ad_views, fcm_token, created_at, updated_at`

// Create implements store.UserStore.Create.
// Returns store.ErrUserExists if a row already exists for the same ID.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID))
		return err
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.UserName,
		user.Plan,
		user.Gems,
		user.AdViews,
		user.FCMToken,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrUserExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID))
		return MapError(err)
	}

	log.Info("user created",
		slog.String("user_id", user.ID),
		slog.String("plan", string(user.Plan)))
	return nil
}

// GetByID implements store.UserStore.GetByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.UserName,
		&user.Plan,
		&user.Gems,
		&user.AdViews,
		&user.FCMToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return &user, nil
}

// Update implements store.UserStore.Update.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID))
		return err
	}

	query := `
		UPDATE users
		SET email = $2, display_name = $3, user_name = $4, plan = $5,
		    gems = $6, ad_views = $7, fcm_token = $8, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.UserName,
		user.Plan,
		user.Gems,
		user.AdViews,
		user.FCMToken,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID))
		return MapError(err)
	}

	return CheckRowsAffected(result, "user")
}

// AdjustGems implements store.UserStore.AdjustGems. The balance check and
// the update happen in one statement so concurrent adjustments cannot
// interleave into a negative balance.
func (s *UserStore) AdjustGems(ctx context.Context, id string, delta int) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET gems = gems + $2, updated_at = NOW()
		WHERE id = $1 AND gems + $2 >= 0
		RETURNING gems
	`
	var balance int
	err := s.db.QueryRowContext(ctx, query, id, delta).Scan(&balance)
	if err == sql.ErrNoRows {
		// Either the user is missing or the delta would go negative;
		// a second lookup tells them apart.
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return 0, getErr
		}
		return 0, domain.ErrGemsNegative
	}
	if err != nil {
		log.Error("failed to adjust gems",
			slog.String("error", err.Error()),
			slog.String("user_id", id),
			slog.Int("delta", delta))
		return 0, MapError(err)
	}

	log.Debug("gem balance adjusted",
		slog.String("user_id", id),
		slog.Int("delta", delta),
		slog.Int("balance", balance))
	return balance, nil
}

// SetPushToken implements store.UserStore.SetPushToken.
func (s *UserStore) SetPushToken(ctx context.Context, id, token string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET fcm_token = $2, updated_at = NOW() WHERE id = $1`, id, token)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "user")
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	return s.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
}

// ListByPlan implements store.UserStore.ListByPlan.
func (s *UserStore) ListByPlan(ctx context.Context, plan domain.Plan) ([]*domain.User, error) {
	return s.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE plan = $1 ORDER BY created_at`, plan)
}

func (s *UserStore) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.DisplayName,
			&user.UserName,
			&user.Plan,
			&user.Gems,
			&user.AdViews,
			&user.FCMToken,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}

// Delete implements store.UserStore.Delete.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return err
	}

	log.Info("user deleted", slog.String("user_id", id))
	return nil
}
