package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	// usable before InitLogger runs, e.g. from tests
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// InitLogger installs the process logger. format is "json" or "text".
func InitLogger(level, format string) *slog.Logger {
	return InitLoggerWithWriter(os.Stdout, level, format)
}

func InitLoggerWithWriter(w io.Writer, level, format string) *slog.Logger {
	config := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, config)
	} else {
		handler = slog.NewJSONHandler(w, config)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("Logger initialized", "level", config.Level.Level().String(), "format", format)

	return Logger
}

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
