// Package logger configures the manager's own structured logging: colored
// text on stderr for the human at the terminal, plus an optional rotating
// diagnostic file. Collector output never goes through here; collectors
// inherit their slot's log file directly.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults, lumberjack semantics.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Config describes the manager's diagnostic logging.
type Config struct {
	Level      string `mapstructure:"level"`        // debug, info, warn, error
	File       string `mapstructure:"file"`         // optional rotating log file
	MaxSizeMB  int    `mapstructure:"max_size_mb"`  // megabytes before rotation
	MaxBackups int    `mapstructure:"max_backups"`  // rotated files to keep
	MaxAgeDays int    `mapstructure:"max_age_days"` // days to keep
	Compress   bool   `mapstructure:"compress"`     // gzip rotated files
}

// Setup builds the slog logger described by c and installs it as the
// default. The returned closer owns the rotating file writer, when one is
// configured.
func (c Config) Setup() (*slog.Logger, io.Closer, error) {
	level := parseLevel(c.Level)
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{NewColorTextHandler(os.Stderr, opts)}
	closer := io.Closer(nopCloser{})
	if c.File != "" {
		w := &lj.Logger{
			Filename:   c.File,
			MaxSize:    valOr(c.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valOr(c.MaxBackups, DefaultMaxBackups),
			MaxAge:     valOr(c.MaxAgeDays, DefaultMaxAgeDays),
			Compress:   c.Compress,
		}
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
		closer = w
	}

	var h slog.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = multiHandler(handlers)
	}
	log := slog.New(h)
	slog.SetDefault(log)
	return log, closer, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func valOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler fans a record out to all handlers.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithGroup(name)
	}
	return next
}
