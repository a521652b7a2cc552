package main

import (
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/lingosavor/savor-api/internal/config"
)

// migrationsDir is the goose migration directory, relative to the working
// directory the server is launched from.
const migrationsDir = "migrations"

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// runMigrationCommand executes a goose migration command (up, down or
// status) against the configured database and returns.
func runMigrationCommand(cfg *config.Config, logger *slog.Logger, command string) error {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database after migration", "error", err)
		}
	}()

	goose.SetLogger(&slogGooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q, expected up, down or status", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	logger.Info("migration command completed", "command", command)
	return nil
}
