package logging_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNewNopDiscardsEverything(t *testing.T) {
	logger := logging.NewNop()
	assert.NotPanics(t, func() {
		logger.Info("dropped", "key", "value")
	})
}
