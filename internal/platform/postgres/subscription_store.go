package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// SubscriptionStore implements the store.SubscriptionStore interface using
// PostgreSQL. Each user has at most one row; the entitlement map lives in
// a JSONB column because the billing provider controls its shape.
type SubscriptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSubscriptionStore creates a new PostgreSQL implementation of the
// SubscriptionStore interface. If logger is nil, a default logger will be
// used.
func NewSubscriptionStore(db store.DBTX, logger *slog.Logger) *SubscriptionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SubscriptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscription_store")),
	}
}

var _ store.SubscriptionStore = (*SubscriptionStore)(nil)

// WithTx returns a SubscriptionStore bound to the given transaction.
func (s *SubscriptionStore) WithTx(tx *sql.Tx) store.SubscriptionStore {
	return &SubscriptionStore{db: tx, logger: s.logger}
}

// Upsert implements store.SubscriptionStore.Upsert.
func (s *SubscriptionStore) Upsert(ctx context.Context, sub *domain.Subscription) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entitlements, err := jsonbValue(sub.Entitlements)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO subscriptions (user_id, entitlements, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET entitlements = EXCLUDED.entitlements, updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, sub.UserID, entitlements, sub.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert subscription",
			slog.String("error", err.Error()),
			slog.String("user_id", sub.UserID))
		return MapError(err)
	}

	return nil
}

// GetByUser implements store.SubscriptionStore.GetByUser.
// Returns store.ErrSubscriptionNotFound if the user has no row.
func (s *SubscriptionStore) GetByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	var (
		sub          domain.Subscription
		entitlements []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, entitlements, updated_at FROM subscriptions WHERE user_id = $1`, userID).
		Scan(&sub.UserID, &entitlements, &sub.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrSubscriptionNotFound
		}
		return nil, MapError(err)
	}

	if err := scanJSONB(entitlements, &sub.Entitlements); err != nil {
		return nil, err
	}

	return &sub, nil
}

// List implements store.SubscriptionStore.List.
func (s *SubscriptionStore) List(ctx context.Context) ([]*domain.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, entitlements, updated_at FROM subscriptions ORDER BY user_id`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var subs []*domain.Subscription
	for rows.Next() {
		var (
			sub          domain.Subscription
			entitlements []byte
		)
		if err := rows.Scan(&sub.UserID, &entitlements, &sub.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		if err := scanJSONB(entitlements, &sub.Entitlements); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return subs, nil
}

// DeleteByUser implements store.SubscriptionStore.DeleteByUser.
func (s *SubscriptionStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}
