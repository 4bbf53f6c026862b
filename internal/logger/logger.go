// Package logger provides the leveled console logger used for diagnostics.
//
// Diagnostics (skipped directories, cache and audit failures) go to the
// logger, normally stderr. Results meant for the user are rendered by the
// report package on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level is a log severity; messages below the configured level are dropped.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel maps trace|debug|info|warn|error (case-insensitive) to a Level.
// Anything else yields LevelWarn, the CLI default.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// Logger writes "[HH:MM:SS] [LEVEL] message" lines. A nil *Logger is valid
// and discards everything.
type Logger struct {
	w     io.Writer
	level Level
	color bool
	mu    sync.Mutex
	now   func() time.Time
}

// New returns a Logger writing to w at the given level. Colour is enabled
// when w is a terminal and NO_COLOR is not set.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		w:     w,
		level: ParseLevel(level),
		color: isTerminal(w),
		now:   time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor forces colour output on or off.
func (l *Logger) SetColor(on bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.color = on
	l.mu.Unlock()
}

// Enabled reports whether messages at lvl would be written.
func (l *Logger) Enabled(lvl Level) bool {
	return l != nil && l.w != nil && lvl >= l.level
}

func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(lvl Level, format string, args ...any) {
	if !l.Enabled(lvl) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	tag := "[" + lvl.String() + "]"

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color {
		tag = levelColor(lvl).Sprint(tag)
	}
	fmt.Fprintf(l.w, "[%s] %s %s\n", l.now().Format("15:04:05"), tag, msg)
}

func levelColor(lvl Level) *color.Color {
	var c *color.Color
	switch lvl {
	case LevelTrace, LevelDebug:
		c = color.New(color.FgHiBlack)
	case LevelInfo:
		c = color.New(color.FgCyan)
	case LevelWarn:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	// l.color already made the TTY decision.
	c.EnableColor()
	return c
}
