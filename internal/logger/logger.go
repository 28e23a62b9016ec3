// Package logger configures the application's slog logger.
//
// dev and test environments get a human readable (tint) handler, prod and staging get JSON.
// Handlers that need request details should use ContextRequestLogger - the RequestLogging
// middleware stores a logger carrying the request id in the request context.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelNone is above every level used by the application, so nothing is logged.
const LevelNone = slog.Level(16)

// ParseLogLevel maps a LOG_LEVEL value to a slog.Level. Unknown values default to debug.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "off":
		return LevelNone
	default:
		return slog.LevelDebug
	}
}

// InitLogger creates the application logger and sets it as the slog default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	l := NewLogger(os.Stderr, level, environment)
	slog.SetDefault(l)
	return l
}

// NewLogger creates a logger writing to w without touching the slog default.
// Use this where several loggers coexist in one process (e.g. concurrent test servers).
func NewLogger(w io.Writer, level slog.Level, environment string) *slog.Logger {
	if level >= LevelNone {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelNone}))
	}

	var handler slog.Handler
	switch environment {
	case "prod", "staging":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	}
	return slog.New(handler).With(slog.String("environment", environment))
}
