package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Emojis for different log types
const (
	infoEmoji    = "ℹ️ "
	successEmoji = "✅ "
	errorEmoji   = "❌ "
	warnEmoji    = "⚠️ "
	stepEmoji    = "👉 "
	debugEmoji   = "🔍 "
	prEmoji      = "🔄 "
	diffEmoji    = "📝 "
)

// Options configures a Logger
type Options struct {
	Writer  io.Writer
	Level   slog.Level
	NoColor bool
}

// Logger prints emoji-tagged messages through a slog handler
type Logger struct {
	slog  *slog.Logger
	level slog.Level
}

// New creates a logger on stderr; debug lowers the level to slog.LevelDebug
func New(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a logger backed by a tint handler
func NewWithOptions(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
	})
	return &Logger{
		slog:  slog.New(handler),
		level: opts.Level,
	}
}

// ParseLevel converts a textual log level into a slog.Level
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) emit(level slog.Level, emoji, format string, args ...interface{}) {
	if !l.slog.Enabled(context.Background(), level) {
		return
	}
	l.slog.Log(context.Background(), level, emoji+fmt.Sprintf(format, args...))
}

// Info prints an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(slog.LevelInfo, infoEmoji, format, args...)
}

// Success prints a success message
func (l *Logger) Success(format string, args ...interface{}) {
	l.emit(slog.LevelInfo, successEmoji, format, args...)
}

// Error prints an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(slog.LevelError, errorEmoji, format, args...)
}

// Warning prints a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.emit(slog.LevelWarn, warnEmoji, format, args...)
}

// Step prints a step message
func (l *Logger) Step(format string, args ...interface{}) {
	l.emit(slog.LevelInfo, stepEmoji, format, args...)
}

// Debug prints a debug message if debug is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(slog.LevelDebug, debugEmoji, format, args...)
}

// PR prints a PR-related message
func (l *Logger) PR(format string, args ...interface{}) {
	l.emit(slog.LevelInfo, prEmoji, format, args...)
}

// Diff prints a diff-related message
func (l *Logger) Diff(format string, args ...interface{}) {
	l.emit(slog.LevelInfo, diffEmoji, format, args...)
}

// With returns a logger that attaches the given attributes to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), level: l.level}
}

// IsDebug returns whether debug logging is enabled
func (l *Logger) IsDebug() bool {
	return l.level <= slog.LevelDebug
}
