// Package main implements the entry point for the savor API server: a
// language-learning backend serving word lookups, document analysis, chat
// rooms and the scheduled task pipelines.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/lingosavor/savor-api/internal/config"
	"github.com/lingosavor/savor-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up|down|status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.SetDefault(appLogger)

	if *migrateCmd != "" {
		if err := runMigrationCommand(cfg, appLogger, *migrateCmd); err != nil {
			appLogger.Error("migration failed", "command", *migrateCmd, "error", err)
			log.Fatalf("migration failed: %v", err)
		}
		return
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.run(ctx); err != nil {
		appLogger.Error("server exited with error", "error", err)
		log.Fatalf("server exited with error: %v", err)
	}
}
