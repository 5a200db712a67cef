package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatKeyValues(t *testing.T) {
	require.Empty(t, formatKeyValues(nil))
	require.Equal(t, "table=3 seat=2", formatKeyValues([]any{"table", 3, "seat", 2}))
	require.Equal(t, "table=3 dangling=<missing>", formatKeyValues([]any{"table", 3, "dangling"}))
}

func TestTestLogger(t *testing.T) {
	l := NewTest(t)
	require.NotPanics(t, func() {
		l.Debug("debug", "k", "v")
		l.Info("info")
		l.Warn("warn", "k")
		l.Error("error", "error", "boom")
	})
}
