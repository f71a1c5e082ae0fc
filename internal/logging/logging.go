// Package logging provides a shared, structured logger for chousei.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level is read from CHOUSEI_LOG_LEVEL (debug, info,
// warn, error; default info).
//
// Usage:
//
//	log := logging.New("clipboard")    // tagged with component="clipboard"
//	log.Info("copied", "chars", n)
//	log.Error("copy failed", "error", err)
//
// Output goes to stderr unless CHOUSEI_LOG_FILE names a file, in which case
// entries are appended there. A file keeps log lines from landing on top of
// the terminal UI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	baseLogger *slog.Logger
)

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every entry. If
// component is empty the base logger is returned. The base logger is lazily
// initialized on the first call.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(openOutput(os.Getenv("CHOUSEI_LOG_FILE")), &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("CHOUSEI_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// openOutput returns the log destination for path, falling back to stderr
// when path is empty or cannot be opened.
func openOutput(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return os.Stderr
	}
	return file
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
