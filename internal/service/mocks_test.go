package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/store"
)

// Hand-written fakes for the store interfaces these tests touch.

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; ok {
		return store.ErrUserExists
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) AdjustGems(ctx context.Context, id string, delta int) (int, error) {
	u, ok := s.users[id]
	if !ok {
		return 0, store.ErrUserNotFound
	}
	if u.Gems+delta < 0 {
		return 0, domain.ErrGemsNegative
	}
	u.Gems += delta
	return u.Gems, nil
}

func (s *fakeUserStore) SetPushToken(ctx context.Context, id, token string) error {
	u, ok := s.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.FCMToken = token
	return nil
}

func (s *fakeUserStore) List(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) ListByPlan(ctx context.Context, plan domain.Plan) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		if u.Plan == plan {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

type fakeNotificationStore struct {
	created    []*domain.Notification
	batches    []int
	failBatch  int // 1-based index of the batch to fail, 0 = never
	batchCalls int
}

func (s *fakeNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *fakeNotificationStore) CreateBatch(ctx context.Context, ns []*domain.Notification) (int64, error) {
	s.batchCalls++
	if s.failBatch == s.batchCalls {
		return 0, errors.New("batch write failed")
	}
	s.created = append(s.created, ns...)
	s.batches = append(s.batches, len(ns))
	return int64(len(ns)), nil
}

func (s *fakeNotificationStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	panic("not implemented")
}

func (s *fakeNotificationStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	panic("not implemented")
}

func (s *fakeNotificationStore) ListPending(ctx context.Context, limit int) ([]*domain.Notification, error) {
	panic("not implemented")
}

func (s *fakeNotificationStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	panic("not implemented")
}

func (s *fakeNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore { return s }
