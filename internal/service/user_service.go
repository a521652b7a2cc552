package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

const (
	userNameLength  = 12
	userNameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// UserService manages the user lifecycle: bootstrap on first sign-in,
// push-token updates, and full account deletion.
type UserService struct {
	users         store.UserStore
	words         store.WordStore
	rooms         store.RoomStore
	tasks         store.TaskStore
	documents     store.DocumentStore
	analyses      store.AnalysisStore
	audios        store.AudioStore
	messages      store.MessageStore
	notifications store.NotificationStore
	subscriptions store.SubscriptionStore
	logger        *slog.Logger
	rng           *rand.Rand
}

// NewUserService creates a UserService over the full set of user-owned
// stores; account deletion walks all of them.
func NewUserService(
	users store.UserStore,
	words store.WordStore,
	rooms store.RoomStore,
	tasks store.TaskStore,
	documents store.DocumentStore,
	analyses store.AnalysisStore,
	audios store.AudioStore,
	messages store.MessageStore,
	notifications store.NotificationStore,
	subscriptions store.SubscriptionStore,
	log *slog.Logger,
) *UserService {
	if users == nil {
		panic("users store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserService{
		users:         users,
		words:         words,
		rooms:         rooms,
		tasks:         tasks,
		documents:     documents,
		analyses:      analyses,
		audios:        audios,
		messages:      messages,
		notifications: notifications,
		subscriptions: subscriptions,
		logger:        log.With(slog.String("component", "user_service")),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Bootstrap ensures a user row exists for the authenticated subject and
// returns it. The call is idempotent: an existing row is returned as-is,
// a missing one is created with the signup defaults and a random username.
func (s *UserService) Bootstrap(ctx context.Context, id, email, displayName string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	user, err = domain.NewUser(id, email, displayName, s.randomUserName())
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent bootstrap calls can race on the insert; the
		// loser reads the winner's row.
		if errors.Is(err, store.ErrUserExists) {
			return s.users.GetByID(ctx, id)
		}
		return nil, err
	}

	log.Info("user bootstrapped",
		slog.String("user_id", user.ID),
		slog.String("user_name", user.UserName))
	return user, nil
}

// SavePushToken stores the user's push notification token.
func (s *UserService) SavePushToken(ctx context.Context, userID, token string) error {
	return s.users.SetPushToken(ctx, userID, token)
}

// DeleteAccount removes the user and everything they own. Deletion is
// best-effort per collection: a failing collection is logged and skipped
// so one bad table does not strand the rest of the data. The user row
// itself goes last, and only its failure is surfaced.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	type cascade struct {
		name   string
		delete func(ctx context.Context, userID string) (int64, error)
	}
	cascades := []cascade{
		{"words", s.words.DeleteByUser},
		{"rooms", s.rooms.DeleteByUser},
		{"tasks", s.tasks.DeleteByUser},
		{"messages", s.messages.DeleteByUser},
		{"analyses", s.analyses.DeleteByUser},
		{"audios", s.audios.DeleteByUser},
		{"documents", s.documents.DeleteByUser},
		{"notifications", s.notifications.DeleteByUser},
		{"subscriptions", s.subscriptions.DeleteByUser},
	}

	for _, c := range cascades {
		count, err := c.delete(ctx, userID)
		if err != nil {
			log.Error("cascade delete failed, skipping collection",
				slog.String("error", err.Error()),
				slog.String("collection", c.name),
				slog.String("user_id", userID))
			continue
		}
		if count > 0 {
			log.Info("cascade delete",
				slog.String("collection", c.name),
				slog.String("user_id", userID),
				slog.Int64("rows", count))
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	log.Info("account deleted", slog.String("user_id", userID))
	return nil
}

func (s *UserService) randomUserName() string {
	b := make([]byte, userNameLength)
	for i := range b {
		b[i] = userNameCharset[s.rng.Intn(len(userNameCharset))]
	}
	return string(b)
}
