package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/config"
	"github.com/lingosavor/savor-api/internal/domain/srs"
	"github.com/lingosavor/savor-api/internal/platform/gcs"
	"github.com/lingosavor/savor-api/internal/platform/gemini"
	"github.com/lingosavor/savor-api/internal/platform/postgres"
	"github.com/lingosavor/savor-api/internal/platform/tts"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/service/auth"
	"github.com/lingosavor/savor-api/internal/store"
	"github.com/lingosavor/savor-api/internal/task"
)

// application holds the shared dependencies so they can be wired once and
// cleaned up together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Platform clients
	generator   *gemini.Generator
	synthesizer *tts.Client
	objects     *gcs.Store

	// Stores
	userStore         store.UserStore
	wordStore         store.WordStore
	roomStore         store.RoomStore
	taskStore         store.TaskStore
	documentStore     store.DocumentStore
	analysisStore     store.AnalysisStore
	audioStore        store.AudioStore
	messageStore      store.MessageStore
	dictionaryStore   store.DictionaryStore
	notificationStore store.NotificationStore
	subscriptionStore store.SubscriptionStore

	// Services
	jwtService          auth.JWTService
	userService         *service.UserService
	gemService          *service.GemService
	meaningService      *service.MeaningService
	chatService         *service.ChatService
	analysisService     *service.AnalysisService
	transcribeService   *service.TranscribeService
	speechService       *service.SpeechService
	notificationService *service.NotificationService

	scheduler *task.Scheduler
}

// newApplication connects to the backing services and wires every store,
// service and scheduled job.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	app.generator, err = gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create content generator: %w", err)
	}

	app.synthesizer, err = tts.NewClient(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	app.objects, err = gcs.NewStore(ctx, logger, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	app.setupStores()
	app.setupServices()
	if err := app.setupScheduler(); err != nil {
		return nil, fmt.Errorf("failed to set up scheduler: %w", err)
	}

	return app, nil
}

func (app *application) setupStores() {
	app.userStore = postgres.NewUserStore(app.db, app.logger)
	app.wordStore = postgres.NewWordStore(app.db, app.logger)
	app.roomStore = postgres.NewRoomStore(app.db, app.logger)
	app.taskStore = postgres.NewTaskStore(app.db, app.logger)
	app.documentStore = postgres.NewDocumentStore(app.db, app.logger)
	app.analysisStore = postgres.NewAnalysisStore(app.db, app.logger)
	app.audioStore = postgres.NewAudioStore(app.db, app.logger)
	app.messageStore = postgres.NewMessageStore(app.db, app.logger)
	app.dictionaryStore = postgres.NewDictionaryStore(app.db, app.logger)
	app.notificationStore = postgres.NewNotificationStore(app.db, app.logger)
	app.subscriptionStore = postgres.NewSubscriptionStore(app.db, app.logger)
}

func (app *application) setupServices() {
	app.gemService = service.NewGemService(app.userStore, app.logger)
	app.notificationService = service.NewNotificationService(app.notificationStore, app.logger)
	app.userService = service.NewUserService(
		app.userStore,
		app.wordStore,
		app.roomStore,
		app.taskStore,
		app.documentStore,
		app.analysisStore,
		app.audioStore,
		app.messageStore,
		app.notificationStore,
		app.subscriptionStore,
		app.logger,
	)
	app.meaningService = service.NewMeaningService(app.generator, app.dictionaryStore, app.wordStore, app.logger)
	app.chatService = service.NewChatService(app.roomStore, app.messageStore, app.documentStore, app.generator, app.logger)
	app.analysisService = service.NewAnalysisService(
		app.documentStore, app.analysisStore, app.generator, app.gemService, app.objects, app.logger)
	app.transcribeService = service.NewTranscribeService(app.documentStore, app.generator, app.objects, app.logger)
	app.speechService = service.NewSpeechService(
		app.documentStore, app.audioStore, app.synthesizer, app.objects, app.gemService, app.logger)
}

// setupScheduler registers the six scheduled jobs against their configured
// cron specs.
func (app *application) setupScheduler() error {
	srsService := srs.NewDefaultService()
	scheduler := task.NewScheduler(app.logger)

	jobs := []struct {
		spec string
		job  task.Job
	}{
		{app.config.Scheduler.WordListSpec, task.NewWordListJob(
			app.wordStore, app.taskStore, app.dictionaryStore, srsService, app.logger)},
		{app.config.Scheduler.DailyTaskSpec, task.NewDailyTaskJob(
			app.userStore, app.taskStore, app.wordStore, app.roomStore, app.messageStore,
			app.dictionaryStore, srsService, app.generator, app.synthesizer, app.objects, app.logger)},
		{app.config.Scheduler.MonthlyGemsSpec, task.NewMonthlyGemsJob(
			app.userStore, app.notificationService, app.logger)},
		{app.config.Scheduler.DailyReminderSpec, task.NewDailyReminderJob(
			app.userStore, app.notificationService, app.logger)},
		{app.config.Scheduler.WordListReminderSpec, task.NewWordListReminderJob(
			app.taskStore, app.notificationService, app.logger)},
		{app.config.Scheduler.PlanSyncSpec, task.NewPlanSyncJob(
			app.userStore, app.subscriptionStore, app.logger)},
	}

	for _, j := range jobs {
		if err := scheduler.Register(j.spec, j.job); err != nil {
			return fmt.Errorf("failed to register job %s: %w", j.job.Name(), err)
		}
	}

	app.scheduler = scheduler
	return nil
}

// run starts the scheduler and serves HTTP until shutdown.
func (app *application) run(ctx context.Context) error {
	app.scheduler.Start()
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup closes the shared resources in reverse dependency order.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.objects != nil {
		if err := app.objects.Close(); err != nil {
			app.logger.Warn("failed to close object store", "error", err)
		}
	}
	if app.synthesizer != nil {
		if err := app.synthesizer.Close(); err != nil {
			app.logger.Warn("failed to close speech client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("failed to close database", "error", err)
		}
	}
}
