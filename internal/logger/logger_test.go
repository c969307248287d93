package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"err", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newTextHandler(&buf, slog.LevelInfo))

	log.Debug("hidden")
	log.Info("collected", "listing", "sip", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "listing=sip")
	assert.Contains(t, out, "rows=3")
}

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newTerminalHandler(&buf, slog.LevelWarn))

	log.Info("hidden")
	log.Warn("command failed", "cmd", "sip show peers")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "command failed")
	assert.Contains(t, out, "sip show peers")
}
