package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger, installs it as the slog default, and
// returns it. Accepted levels: debug, info, warn, error (case-insensitive);
// anything else falls back to info.
func New(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
