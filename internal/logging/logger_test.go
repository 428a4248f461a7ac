package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			InitLogger(tt.level, "text")
			require.NotNil(t, Logger)
			assert.True(t, Logger.Enabled(context.Background(), tt.enabled))
			if tt.enabled > slog.LevelDebug {
				assert.False(t, Logger.Enabled(context.Background(), tt.enabled-4))
			}
		})
	}
}

func TestInitLogger_SetsDefault(t *testing.T) {
	InitLogger("info", "json")
	assert.Same(t, Logger, slog.Default())
}

func TestWithHelpers(t *testing.T) {
	InitLogger("info", "text")

	assert.NotNil(t, WithConnection("conn-1"))
	assert.NotNil(t, WithUser("user-1"))
	assert.NotNil(t, WithError(assert.AnError))
}
