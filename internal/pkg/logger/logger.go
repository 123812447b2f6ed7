package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
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

// New builds the JSON logger shared by the HTTP layer and the services.
// Keys follow the ECS schema so request logs and service logs line up.
func New(w io.Writer, level string, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		AddSource:   strings.EqualFold(env, "development"),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(slog.String("app", "smarthr"), slog.String("env", env))
}

// Nop discards everything; used where a logger is optional.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
