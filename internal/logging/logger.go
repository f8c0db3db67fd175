package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup создает логгер для сервисов. В продакшене (ENV=production) пишем JSON.
func Setup(level string) *slog.Logger {
	return New(os.Stdout, level, os.Getenv("ENV") == "production")
}

func New(w io.Writer, level string, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel понимает debug/info/warn/error, все остальное - info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
