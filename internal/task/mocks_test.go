package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/store"
)

// Hand-written fakes for the store interfaces the jobs touch. Methods a
// test never exercises panic so an accidental call is loud.

type fakeUserStore struct {
	users       map[string]*domain.User
	gemAdjusted map[string]int
	updated     []*domain.User
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{
		users:       make(map[string]*domain.User),
		gemAdjusted: make(map[string]int),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
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
	s.updated = append(s.updated, user)
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
	s.gemAdjusted[id] += delta
	return u.Gems, nil
}

func (s *fakeUserStore) SetPushToken(ctx context.Context, id, token string) error {
	panic("not implemented")
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
	panic("not implemented")
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

type fakeTaskStore struct {
	bundles map[string][]*domain.DailyTaskBundle
	created []*domain.DailyTaskBundle
	updates map[string][]domain.WordListItem
	deleted []string
}

func newFakeTaskStore(bundles ...*domain.DailyTaskBundle) *fakeTaskStore {
	s := &fakeTaskStore{
		bundles: make(map[string][]*domain.DailyTaskBundle),
		updates: make(map[string][]domain.WordListItem),
	}
	for _, b := range bundles {
		s.bundles[b.UserID] = append(s.bundles[b.UserID], b)
	}
	return s
}

func (s *fakeTaskStore) Create(ctx context.Context, bundle *domain.DailyTaskBundle) error {
	s.bundles[bundle.UserID] = append(s.bundles[bundle.UserID], bundle)
	s.created = append(s.created, bundle)
	return nil
}

func (s *fakeTaskStore) GetMostRecentByUser(ctx context.Context, userID string) (*domain.DailyTaskBundle, error) {
	list := s.bundles[userID]
	if len(list) == 0 {
		return nil, store.ErrTaskNotFound
	}
	return list[len(list)-1], nil
}

func (s *fakeTaskStore) ListByUser(ctx context.Context, userID string) ([]*domain.DailyTaskBundle, error) {
	return s.bundles[userID], nil
}

func (s *fakeTaskStore) ListCurrent(ctx context.Context) ([]*domain.DailyTaskBundle, error) {
	var out []*domain.DailyTaskBundle
	for _, list := range s.bundles {
		if len(list) > 0 {
			out = append(out, list[len(list)-1])
		}
	}
	return out, nil
}

func (s *fakeTaskStore) UpdateWordList(ctx context.Context, userID string, items []domain.WordListItem) (int64, error) {
	s.updates[userID] = items
	count := int64(len(s.bundles[userID]))
	for _, b := range s.bundles[userID] {
		b.WordList = items
	}
	return count, nil
}

func (s *fakeTaskStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	count := int64(len(s.bundles[userID]))
	delete(s.bundles, userID)
	s.deleted = append(s.deleted, userID)
	return count, nil
}

func (s *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return s }

type fakeWordStore struct {
	words []*domain.UserWord
}

func (s *fakeWordStore) Create(ctx context.Context, word *domain.UserWord) error {
	s.words = append(s.words, word)
	return nil
}

func (s *fakeWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWord, error) {
	panic("not implemented")
}

func (s *fakeWordStore) List(ctx context.Context) ([]*domain.UserWord, error) {
	return s.words, nil
}

func (s *fakeWordStore) ListByUser(ctx context.Context, userID string) ([]*domain.UserWord, error) {
	var out []*domain.UserWord
	for _, w := range s.words {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *fakeWordStore) ListRandomByUser(ctx context.Context, userID string, limit int) ([]*domain.UserWord, error) {
	panic("not implemented")
}

func (s *fakeWordStore) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	for _, w := range s.words {
		if w.ID == id {
			w.Stage = stage
			return nil
		}
	}
	return store.ErrWordNotFound
}

func (s *fakeWordStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	panic("not implemented")
}

func (s *fakeWordStore) WithTx(tx *sql.Tx) store.WordStore { return s }

type fakeDictionaryStore struct {
	entries map[uuid.UUID]*domain.DictionaryEntry
}

func newFakeDictionaryStore(entries ...*domain.DictionaryEntry) *fakeDictionaryStore {
	s := &fakeDictionaryStore{entries: make(map[uuid.UUID]*domain.DictionaryEntry)}
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return s
}

func (s *fakeDictionaryStore) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	s.entries[entry.ID] = entry
	return nil
}

func (s *fakeDictionaryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DictionaryEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrDictionaryNotFound
	}
	return e, nil
}

func (s *fakeDictionaryStore) GetByWord(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	panic("not implemented")
}

func (s *fakeDictionaryStore) IncrementSavedUsers(ctx context.Context, id uuid.UUID, delta int) error {
	panic("not implemented")
}

func (s *fakeDictionaryStore) WithTx(tx *sql.Tx) store.DictionaryStore { return s }

type fakeSubscriptionStore struct {
	subs []*domain.Subscription
}

func (s *fakeSubscriptionStore) Upsert(ctx context.Context, sub *domain.Subscription) error {
	s.subs = append(s.subs, sub)
	return nil
}

func (s *fakeSubscriptionStore) GetByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	panic("not implemented")
}

func (s *fakeSubscriptionStore) List(ctx context.Context) ([]*domain.Subscription, error) {
	return s.subs, nil
}

func (s *fakeSubscriptionStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	panic("not implemented")
}

func (s *fakeSubscriptionStore) WithTx(tx *sql.Tx) store.SubscriptionStore { return s }

type fakeNotificationStore struct {
	created []*domain.Notification
	batches []int
}

func (s *fakeNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *fakeNotificationStore) CreateBatch(ctx context.Context, ns []*domain.Notification) (int64, error) {
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

func testUser(id string, plan domain.Plan, createdAt time.Time) *domain.User {
	return &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		UserName:  "learner" + id,
		Plan:      plan,
		Gems:      100,
		AdViews:   10,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

type fakeRoomStore struct {
	rooms []*domain.UserRoom
}

func (s *fakeRoomStore) Create(ctx context.Context, room *domain.UserRoom) error {
	s.rooms = append(s.rooms, room)
	return nil
}

func (s *fakeRoomStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserRoom, error) {
	for _, r := range s.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, store.ErrRoomNotFound
}

func (s *fakeRoomStore) ListByUser(ctx context.Context, userID string) ([]*domain.UserRoom, error) {
	var out []*domain.UserRoom
	for _, r := range s.rooms {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRoomStore) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	for _, r := range s.rooms {
		if r.ID == id {
			r.Stage = stage
			return nil
		}
	}
	return store.ErrRoomNotFound
}

func (s *fakeRoomStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	panic("not implemented")
}

func (s *fakeRoomStore) WithTx(tx *sql.Tx) store.RoomStore { return s }

type fakeMessageStore struct {
	messages []*domain.Message
}

func (s *fakeMessageStore) Create(ctx context.Context, msg *domain.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeMessageStore) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range s.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) ListByRoomSince(ctx context.Context, roomID uuid.UUID, since time.Time) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range s.messages {
		if m.RoomID == roomID && m.CreatedAt.After(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	panic("not implemented")
}

func (s *fakeMessageStore) WithTx(tx *sql.Tx) store.MessageStore { return s }

// fakeGenerator returns canned content, overridable per test through the
// function fields.
type fakeGenerator struct {
	grammarFn func(conversation []generation.ChatTurn, plan domain.Plan) ([]domain.Quiz, error)
	passageFn func(req generation.PassageRequest) (*generation.Passage, error)
}

func (g *fakeGenerator) GrammarQuizzes(ctx context.Context, conversation []generation.ChatTurn, plan domain.Plan) ([]domain.Quiz, error) {
	if g.grammarFn != nil {
		return g.grammarFn(conversation, plan)
	}
	return []domain.Quiz{{Question: "q", Options: []string{"a", "b"}, Answer: 0}}, nil
}

func (g *fakeGenerator) Passage(ctx context.Context, req generation.PassageRequest) (*generation.Passage, error) {
	if g.passageFn != nil {
		return g.passageFn(req)
	}
	return &generation.Passage{
		Text:      "a generated passage",
		Questions: []domain.Quiz{{Question: "q", Options: []string{"a", "b"}, Answer: 1}},
	}, nil
}

func (g *fakeGenerator) AnalyzeWord(ctx context.Context, word, sentence string, plan domain.Plan) (*generation.WordAnalysis, error) {
	panic("not implemented")
}

func (g *fakeGenerator) DictionaryEntry(ctx context.Context, baseWord string, plan domain.Plan) (*generation.DictionaryDraft, error) {
	panic("not implemented")
}

func (g *fakeGenerator) Examples(ctx context.Context, baseWord string, meanings []domain.Meaning, seedWords []string, plan domain.Plan) ([][]string, error) {
	panic("not implemented")
}

func (g *fakeGenerator) ChatReply(ctx context.Context, system string, history []generation.ChatTurn, message string, plan domain.Plan) (string, error) {
	panic("not implemented")
}

func (g *fakeGenerator) Transcribe(ctx context.Context, prompt string, media generation.Media) (string, error) {
	panic("not implemented")
}

func (g *fakeGenerator) Summarize(ctx context.Context, text string, plan domain.Plan) (string, error) {
	panic("not implemented")
}

func (g *fakeGenerator) TranslateSentences(ctx context.Context, text string, plan domain.Plan) ([]domain.SentenceTranslation, error) {
	panic("not implemented")
}
