package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		enabled  slog.Level
		disabled *slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug},
		{level: "WARN", enabled: slog.LevelWarn, disabled: levelPtr(slog.LevelInfo)},
		{level: "", enabled: slog.LevelInfo, disabled: levelPtr(slog.LevelDebug)},
		{level: "verbose", enabled: slog.LevelInfo, disabled: levelPtr(slog.LevelDebug)},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			logger := newLogger(tt.level, "json")

			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			if tt.disabled != nil {
				assert.False(t, logger.Enabled(context.Background(), *tt.disabled))
			}
		})
	}
}

func levelPtr(l slog.Level) *slog.Level { return &l }

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
}
