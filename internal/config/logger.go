package config

import (
	"io"
	"log/slog"
	"strings"
)

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

// NewLogger builds the process logger. JSON is the default outside development.
func (c LoggerConfig) NewLogger(w io.Writer, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}

	format := c.Format
	if format == "" {
		format = "json"
		if env == "development" || env == "dev" {
			format = "text"
		}
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func (c LoggerConfig) level() slog.Level {
	switch strings.ToLower(c.Level) {
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
