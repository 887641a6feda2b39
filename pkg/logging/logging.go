// Package logging builds the process-wide slog logger.
//
// Production writes JSON to stdout. Everything else gets colored,
// source-annotated output from tint on stderr.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger for the given mode and level name and installs it as the default.
func New(isProduction bool, level string) *slog.Logger {
	var w io.Writer = os.Stderr
	if isProduction {
		w = os.Stdout
	}
	logger := slog.New(NewHandler(w, isProduction, ParseLevel(level)))
	slog.SetDefault(logger)
	return logger
}

// NewHandler returns a JSON handler in production and a tint handler otherwise.
func NewHandler(w io.Writer, isProduction bool, level slog.Level) slog.Handler {
	if isProduction {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps a level name to a slog.Level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
