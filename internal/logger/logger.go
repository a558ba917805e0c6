package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	log *slog.Logger
	mu  sync.RWMutex
)

// Init initializes the global logger.
// env: "development" or "production". Output goes to stderr so that CLI
// output on stdout stays clean.
func Init(env string) {
	InitWithWriter(env, os.Stderr)
}

// InitWithWriter is Init with an explicit destination, used by tests.
func InitWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: env != "test",
	}

	switch env {
	case "development", "test":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	mu.Lock()
	log = l
	mu.Unlock()
	slog.SetDefault(l)
}

// GetLogger returns the global logger.
func GetLogger() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		// Fallback when Init was never called
		Init("development")
		return GetLogger()
	}
	return l
}

// ============================================
// Convenience functions
// ============================================

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With returns a logger carrying extra fields.
// Example: logger.With("view", "bell").Info("socket open")
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError returns a logger carrying an error field.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// ============================================
// Specialized loggers
// ============================================

// HTTPLog logs one outbound REST call.
func HTTPLog(method, path string, status int, duration time.Duration, attempt int) {
	GetLogger().Debug("http request",
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"attempt", attempt,
	)
}

// SocketLog logs a notification channel lifecycle event.
func SocketLog(path, event string, err error) {
	fields := []any{
		"path", path,
		"event", event,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Warn("socket event", fields...)
	} else {
		GetLogger().Debug("socket event", fields...)
	}
}
