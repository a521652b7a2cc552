package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lingosavor/savor-api/internal/platform/logger"
)

func TestSetupReturnsLogger(t *testing.T) {
	log := logger.Setup("debug")
	assert.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))

	log = logger.Setup("warn")
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	log := logger.Setup("verbose")
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestFromContext(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithLogger(context.Background(), custom)
	assert.Same(t, custom, logger.FromContext(ctx))

	// Without a stored logger the process default is returned.
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithLogger(context.Background(), custom)
	assert.Same(t, custom, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}
