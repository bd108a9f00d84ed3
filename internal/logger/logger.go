package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the service logger: JSON on stdout, debug level in dev.
func New(env string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level(env)}))
}

// NewText returns a human-readable logger for command line tools.
func NewText(w io.Writer, env string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(env)}))
}

func level(env string) slog.Level {
	if env == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
