// Package logging wraps log/slog with the conventions the slosh tools share:
// level and format come from the environment and output goes to stderr so
// stdout stays free for data and the terminal view.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelEnv  = "SLOSH_LOG_LEVEL"
	FormatEnv = "SLOSH_LOG_FORMAT"
)

// Logger wraps slog.Logger so packages can take one concrete type.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w. Level is read from SLOSH_LOG_LEVEL
// (DEBUG, INFO, WARN, ERROR; default INFO) and format from SLOSH_LOG_FORMAT
// (text or json; default text).
func New(w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv()}
	var h slog.Handler
	if strings.EqualFold(os.Getenv(FormatEnv), "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog.New(h)}
}

func Default() *Logger {
	return New(os.Stderr)
}

// Discard drops everything. Used while a full-screen view owns the terminal.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ToFile logs to path, appending. The returned closer must be closed by the
// caller.
func ToFile(path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, WrapError(err, "open log %s", path)
	}
	return New(f), f, nil
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

func levelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnv)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WrapError adds context to err, keeping it matchable with errors.Is.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
