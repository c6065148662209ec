package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger for cfg. Production uses the JSON handler;
// otherwise the text handler. LogLevel may be debug, info, warn or error
// (default: info). Debug logging adds source locations.
func NewLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "eventcalendar", "env", cfg.Environment)
}
