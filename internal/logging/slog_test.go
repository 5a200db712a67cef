package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	logger.Debug("debug message", "table", 3)
	logger.Info("info message", "partition", "main")
	logger.Warn("warn message")
	logger.Error("error message", "error", "boom")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG msg=\"debug message\" table=3")
	assert.Contains(t, output, "level=INFO msg=\"info message\" partition=main")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "error=boom")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewJSON(buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept", "seat", 2)

	require.NotContains(t, buf.String(), "dropped")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.InDelta(t, 2, rec["seat"], 0)
}

func TestSlogLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewJSON(buf, "info").With("component", "engine")

	logger.Info("hello")

	assert.Contains(t, buf.String(), `"component":"engine"`)
	require.NotNil(t, logger.Slog())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	require.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x", "k", "v")
		logger.Warn("x")
		logger.Error("x")
		logger.Fatal("x")
	})
	require.NotNil(t, NewSlogDefault())
}
