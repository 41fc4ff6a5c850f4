// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Format is json or text.
	Format string
	// Output is where the logs will be written to.
	Output io.Writer
	// Network is attached to every record.
	Network string
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New creates a structured logger with the given configuration.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	logger := slog.New(handler).With(slog.String("service", "xrplpay"))
	if cfg.Network != "" {
		logger = logger.With(slog.String("network", cfg.Network))
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
