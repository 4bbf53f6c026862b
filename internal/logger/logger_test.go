package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time { return time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC) }

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		" info ":  LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"":        LevelWarn,
		"verbose": LevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.now = fixedClock

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken: %v", "disk")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[13:04:05] [INFO] shown 2\n")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[ERROR] broken: disk")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestLogger_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.now = fixedClock
	l.Warnf("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestLogger_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.now = fixedClock
	l.SetColor(true)
	l.Warnf("colored")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "colored")
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Infof("nothing")
		l.SetColor(true)
	})
	assert.False(t, l.Enabled(LevelError))
}
