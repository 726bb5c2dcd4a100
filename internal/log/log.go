// Package log provides a categorized logger for jig. The TUI owns stdout and
// stderr, so log output goes to a file under the user config directory (or
// wherever Init points it). Before Init the logger is a no-op.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Category tags each log line with the subsystem it came from.
type Category string

const (
	CatUI      Category = "ui"
	CatVCS     Category = "vcs"
	CatRuntime Category = "runtime"
	CatConfig  Category = "config"
	CatWatch   Category = "watch"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
)

// Init opens (or creates) the log file and installs a JSON handler at the
// given level ("debug", "info", "warn" or "error"). Passing an empty path
// disables logging.
func Init(path, level string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from our own config dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)}))
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
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

// Close flushes and closes the log sink.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Debug(cat Category, msg string, args ...any) { get().Debug(msg, prepend(cat, args)...) }
func Info(cat Category, msg string, args ...any)  { get().Info(msg, prepend(cat, args)...) }
func Warn(cat Category, msg string, args ...any)  { get().Warn(msg, prepend(cat, args)...) }
func Error(cat Category, msg string, args ...any) { get().Error(msg, prepend(cat, args)...) }

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func prepend(cat Category, args []any) []any {
	out := make([]any, 0, len(args)+2)
	out = append(out, "cat", string(cat))
	return append(out, args...)
}
