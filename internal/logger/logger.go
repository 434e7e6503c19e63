// Package logger sets up structured logging with log/slog. Output is
// JSON on stdout with the service name attached to every record.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init creates the service logger and installs it as the slog default.
func Init(service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", service),
	)
	slog.SetDefault(logger)

	return logger
}

// LevelFromEnv reads LOG_LEVEL (debug, info, warn, error). Defaults to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
