package task

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/domain/srs"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// Pacing against the generation API's rate limits: users are processed
// sequentially in small batches with a delay between batches, and grammar
// generation for one user's rooms fans out in bounded sub-batches.
const (
	userBatchSize  = 10
	userBatchDelay = time.Second
	roomBatchSize  = 50
	roomBatchDelay = time.Second

	// maxPassageTopics bounds how many study items seed one passage.
	maxPassageTopics = 5
)

// DailyTaskJob generates each target user's daily content: stage
// progression, grammar quizzes from unreviewed room conversation, a
// reading passage, and for paying users a listening passage with
// synthesized narration.
type DailyTaskJob struct {
	users       store.UserStore
	tasks       store.TaskStore
	words       store.WordStore
	rooms       store.RoomStore
	messages    store.MessageStore
	dictionary  store.DictionaryStore
	srs         srs.Service
	generator   generation.Generator
	synthesizer service.Synthesizer
	objects     service.ObjectStore
	logger      *slog.Logger
	now         func() time.Time
	rng         *rand.Rand
}

// NewDailyTaskJob creates the daily task generation job.
func NewDailyTaskJob(
	users store.UserStore,
	tasks store.TaskStore,
	words store.WordStore,
	rooms store.RoomStore,
	messages store.MessageStore,
	dictionary store.DictionaryStore,
	srsService srs.Service,
	generator generation.Generator,
	synthesizer service.Synthesizer,
	objects service.ObjectStore,
	log *slog.Logger,
) *DailyTaskJob {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DailyTaskJob{
		users:       users,
		tasks:       tasks,
		words:       words,
		rooms:       rooms,
		messages:    messages,
		dictionary:  dictionary,
		srs:         srsService,
		generator:   generator,
		synthesizer: synthesizer,
		objects:     objects,
		logger:      log.With(slog.String("component", "daily_task_job")),
		now:         func() time.Time { return time.Now().UTC() },
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name implements Job.
func (j *DailyTaskJob) Name() string { return "daily_task_generation" }

// targetUser is one user due for regeneration this run. bundle is nil for
// users who have never had one; lastReviewed anchors the unreviewed-
// message window for grammar generation.
type targetUser struct {
	user         *domain.User
	bundle       *domain.DailyTaskBundle
	lastReviewed time.Time
	flags        service.RegenFlags
}

// Run implements Job. The target set is the union of users with no bundle
// at all and users whose current bundle has completed categories. A user
// failure is recorded and the run moves on; only failures to enumerate
// the population abort the run.
func (j *DailyTaskJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport(j.Name())
	now := j.now()

	targets, err := j.computeTargets(ctx)
	if err != nil {
		return nil, err
	}
	j.logger.Info("target users computed", slog.Int("count", len(targets)))

	for start := 0; start < len(targets); start += userBatchSize {
		if start > 0 {
			if err := pause(ctx, userBatchDelay); err != nil {
				return nil, err
			}
		}

		end := start + userBatchSize
		if end > len(targets) {
			end = len(targets)
		}
		for _, t := range targets[start:end] {
			report.Record(t.user.ID, j.processUser(ctx, t, now))
		}
	}

	return report.Finish(), nil
}

func (j *DailyTaskJob) computeTargets(ctx context.Context) ([]targetUser, error) {
	users, err := j.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	bundles, err := j.tasks.ListCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list current bundles: %w", err)
	}

	current := make(map[string]*domain.DailyTaskBundle, len(bundles))
	for _, b := range bundles {
		current[b.UserID] = b
	}

	var targets []targetUser
	for _, u := range users {
		bundle, ok := current[u.ID]
		switch {
		case !ok:
			targets = append(targets, targetUser{
				user:         u,
				lastReviewed: u.CreatedAt,
				flags:        service.AllRegenFlags(),
			})
		case len(bundle.IsCompleted) > 0:
			targets = append(targets, targetUser{
				user:         u,
				bundle:       bundle,
				lastReviewed: bundle.CreatedAt,
				flags:        service.RegenFlagsFor(bundle.IsCompleted),
			})
		}
	}
	return targets, nil
}

func (j *DailyTaskJob) processUser(ctx context.Context, t targetUser, now time.Time) error {
	log := j.logger.With(slog.String("user_id", t.user.ID))
	ctx = logger.WithLogger(ctx, log)

	words, err := j.words.ListByUser(ctx, t.user.ID)
	if err != nil {
		return err
	}
	rooms, err := j.rooms.ListByUser(ctx, t.user.ID)
	if err != nil {
		return err
	}

	j.progressStages(ctx, words, rooms)

	var content service.BundleContent
	if t.flags.WordList {
		content.WordList = buildWordList(ctx, j.dictionary, j.srs, now, words, log)
	}
	if t.flags.GrammarList {
		content.GrammarList = j.generateGrammar(ctx, t, rooms)
	}
	if t.flags.Reading {
		content.Reading = j.generatePassage(ctx, t, words, rooms, generation.PassageReading)
	}
	if t.flags.Listening && t.user.Plan != domain.PlanFree {
		content.Listening = j.generatePassage(ctx, t, words, rooms, generation.PassageListening)
		if content.Listening != nil {
			j.attachNarration(ctx, t.user.ID, content.Listening)
		}
	}

	// A first-time user with nothing generatable gets no bundle at all
	// rather than an empty shell.
	if t.bundle == nil &&
		len(content.WordList) == 0 && len(content.GrammarList) == 0 &&
		content.Reading == nil && content.Listening == nil {
		log.Info("no content generated, skipping bundle")
		return nil
	}

	merged := service.AssembleBundle(t.bundle, content, t.flags, t.user.ID, now)

	if t.bundle != nil {
		if _, err := j.tasks.DeleteByUser(ctx, t.user.ID); err != nil {
			return err
		}
	}
	return j.tasks.Create(ctx, merged)
}

// progressStages advances each item at most one stage per run. Failures
// are logged per item and never abort the user.
func (j *DailyTaskJob) progressStages(ctx context.Context, words []*domain.UserWord, rooms []*domain.UserRoom) {
	log := logger.FromContextOrDefault(ctx, j.logger)

	for _, w := range words {
		next, changed, err := j.srs.NextWordStage(w.Stage, w.ReviewData, w.Answers)
		if err != nil {
			log.Warn("word stage evaluation failed",
				slog.String("error", err.Error()),
				slog.String("word_id", w.ID.String()))
			continue
		}
		if !changed {
			continue
		}
		if err := j.words.UpdateStage(ctx, w.ID, next); err != nil {
			log.Warn("word stage update failed",
				slog.String("error", err.Error()),
				slog.String("word_id", w.ID.String()))
			continue
		}
		w.Stage = next
	}

	for _, r := range rooms {
		next, changed, err := j.srs.NextRoomStage(r.Stage, r.ReviewData)
		if err != nil {
			log.Warn("room stage evaluation failed",
				slog.String("error", err.Error()),
				slog.String("room_id", r.ID.String()))
			continue
		}
		if !changed {
			continue
		}
		if err := j.rooms.UpdateStage(ctx, r.ID, next); err != nil {
			log.Warn("room stage update failed",
				slog.String("error", err.Error()),
				slog.String("room_id", r.ID.String()))
			continue
		}
		r.Stage = next
	}
}

// generateGrammar builds quizzes from each eligible room's unreviewed
// conversation, fanning rooms out in bounded parallel sub-batches. A
// failing room yields nothing and is filtered out.
func (j *DailyTaskJob) generateGrammar(ctx context.Context, t targetUser, rooms []*domain.UserRoom) []domain.GrammarQuiz {
	var eligible []*domain.UserRoom
	for _, r := range rooms {
		if r.DocumentID != nil {
			eligible = append(eligible, r)
		}
	}

	var all []domain.GrammarQuiz
	for start := 0; start < len(eligible); start += roomBatchSize {
		if start > 0 {
			if err := pause(ctx, roomBatchDelay); err != nil {
				return all
			}
		}

		end := start + roomBatchSize
		if end > len(eligible) {
			end = len(eligible)
		}
		batch := eligible[start:end]

		results := make([][]domain.GrammarQuiz, len(batch))
		var wg sync.WaitGroup
		for i, room := range batch {
			wg.Add(1)
			go func(i int, room *domain.UserRoom) {
				defer wg.Done()
				results[i] = j.roomQuizzes(ctx, t, room)
			}(i, room)
		}
		wg.Wait()

		for _, quizzes := range results {
			all = append(all, quizzes...)
		}
	}
	return all
}

func (j *DailyTaskJob) roomQuizzes(ctx context.Context, t targetUser, room *domain.UserRoom) []domain.GrammarQuiz {
	log := logger.FromContextOrDefault(ctx, j.logger)

	msgs, err := j.messages.ListByRoomSince(ctx, room.ID, t.lastReviewed)
	if err != nil {
		log.Warn("failed to load room messages",
			slog.String("error", err.Error()),
			slog.String("room_id", room.ID.String()))
		return nil
	}
	if len(msgs) == 0 {
		return nil
	}

	turns := make([]generation.ChatTurn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, generation.ChatTurn{Role: string(m.Role), Content: m.Content})
	}

	quizzes, err := j.generator.GrammarQuizzes(ctx, turns, t.user.Plan)
	if err != nil {
		log.Warn("grammar generation failed for room",
			slog.String("error", err.Error()),
			slog.String("room_id", room.ID.String()))
		return nil
	}

	result := make([]domain.GrammarQuiz, 0, len(quizzes))
	for _, q := range quizzes {
		result = append(result, domain.GrammarQuiz{Quiz: q, RoomID: room.ID})
	}
	return result
}

// generatePassage produces one passage for the modality, seeded with the
// selected study items and the previous passage. Returns nil, meaning
// skip, when no items are at this stage or generation fails.
func (j *DailyTaskJob) generatePassage(
	ctx context.Context,
	t targetUser,
	words []*domain.UserWord,
	rooms []*domain.UserRoom,
	kind generation.PassageKind,
) *domain.PassageTask {
	log := logger.FromContextOrDefault(ctx, j.logger)

	topics := j.selectTopics(words, rooms, kind)
	if len(topics) == 0 {
		return nil
	}

	req := generation.PassageRequest{
		Kind:   kind,
		Plan:   t.user.Plan,
		Topics: topics,
	}
	if prev := previousPassage(t.bundle, kind); prev != nil {
		req.PreviousText = prev.Text
		if prev.UserImpression != nil {
			req.UserImpression = *prev.UserImpression
		}
	}

	p, err := j.generator.Passage(ctx, req)
	if err != nil {
		log.Warn("passage generation failed",
			slog.String("error", err.Error()),
			slog.String("kind", string(kind)))
		return nil
	}

	return &domain.PassageTask{Text: p.Text, Questions: p.Questions}
}

// selectTopics picks up to maxPassageTopics items whose stage matches the
// modality, least-reviewed tiers first and randomized within each tier.
func (j *DailyTaskJob) selectTopics(words []*domain.UserWord, rooms []*domain.UserRoom, kind generation.PassageKind) []string {
	stage, modality := domain.StageReading, domain.ModalityReading
	if kind == generation.PassageListening {
		stage, modality = domain.StageListening, domain.ModalityListening
	}

	type candidate struct {
		text    string
		reviews int
	}
	var candidates []candidate
	for _, w := range words {
		if w.Stage == stage {
			candidates = append(candidates, candidate{w.Word, len(w.ReviewData.ForModality(modality))})
		}
	}
	for _, r := range rooms {
		if r.Stage == stage {
			candidates = append(candidates, candidate{r.Title, len(r.ReviewData.ForModality(modality))})
		}
	}

	var topics []string
	for tier := 0; tier <= 2 && len(topics) < maxPassageTopics; tier++ {
		var pool []string
		for _, c := range candidates {
			reviews := c.reviews
			if reviews > 2 {
				reviews = 2
			}
			if reviews == tier {
				pool = append(pool, c.text)
			}
		}
		j.rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		for _, text := range pool {
			if len(topics) == maxPassageTopics {
				break
			}
			topics = append(topics, text)
		}
	}
	return topics
}

// attachNarration synthesizes and uploads the listening passage's audio.
// A synthesis failure keeps the passage, just without audio.
func (j *DailyTaskJob) attachNarration(ctx context.Context, userID string, passage *domain.PassageTask) {
	log := logger.FromContextOrDefault(ctx, j.logger)

	if j.synthesizer == nil || j.objects == nil {
		return
	}

	data, err := j.synthesizer.Synthesize(ctx, passage.Text)
	if err != nil {
		log.Warn("narration synthesis failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return
	}

	objectName := fmt.Sprintf("tasks/%s/%s.mp3", userID, uuid.New())
	url, err := j.objects.Upload(ctx, objectName, "audio/mpeg", data)
	if err != nil {
		log.Warn("narration upload failed",
			slog.String("error", err.Error()),
			slog.String("object", objectName))
		return
	}
	passage.AudioURL = &url
}

// previousPassage returns the matching passage from the user's current
// bundle, if any.
func previousPassage(bundle *domain.DailyTaskBundle, kind generation.PassageKind) *domain.PassageTask {
	if bundle == nil {
		return nil
	}
	if kind == generation.PassageListening {
		return bundle.Listening
	}
	return bundle.Reading
}

// pause sleeps for d, returning early if the context is canceled.
func pause(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
