package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})

	return NewSlog(slog.New(handler)), buf
}

func TestNewSlog(t *testing.T) {
	logger, _ := newBufLogger(slog.LevelDebug)
	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestNewSlogDefault(t *testing.T) {
	require.NotNil(t, NewSlogDefault())
}

func TestSlogLoggerLevels(t *testing.T) {
	logger, buf := newBufLogger(slog.LevelDebug)

	logger.Debug("drag started", "item", "b1")
	logger.Info("board loaded", "date", "2026-08-30")
	logger.Warn("orphaned lock", "resource", "boat-9")
	logger.Error("save failed", "error", "timeout")

	output := buf.String()
	assert.Contains(t, output, "drag started")
	assert.Contains(t, output, "item=b1")
	assert.Contains(t, output, "date=2026-08-30")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "level=ERROR")
}

func TestSlogLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufLogger(slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
}

func TestNopLogger(t *testing.T) {
	nop := NewNop()

	// Must be safe to call, including Fatal, without side effects.
	nop.Debug("x")
	nop.Info("x")
	nop.Warn("x")
	nop.Error("x")
	nop.Fatal("x")
}
