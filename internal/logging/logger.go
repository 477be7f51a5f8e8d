package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the moderation service's default logger: JSON records
// on stdout, level taken from LOG_LEVEL (debug/info/warn/error,
// defaults to info). The Postgres sink is attached later in main once
// the database is up.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
