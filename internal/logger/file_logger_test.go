package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogLevelWarning)
	l.now = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warning("shown %s", "warn")
	l.Error("shown %s", "error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[2024-06-01 09:30:00] [WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelWarning, ParseLevel("warning"))
	assert.Equal(t, LogLevelError, ParseLevel(" ERROR "))
	assert.Equal(t, LogLevelInfo, ParseLevel("nonsense"))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("nothing")
		_ = l.Close()
	})
}

func TestSessionLogger(t *testing.T) {
	dir := t.TempDir()

	l, err := NewSessionLogger(dir, "BTC", LogLevelDebug)
	require.NoError(t, err)
	l.Info("selected %s", "BTC")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "DASHBOARD SESSION STARTED")
	assert.Contains(t, content, "[INFO] selected BTC")
	assert.True(t, strings.Contains(content, "DASHBOARD SESSION ENDED"))
}
