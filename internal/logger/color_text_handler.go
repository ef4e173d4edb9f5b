package logger

import (
	"context"
	"io"
	"log/slog"
)

// ColorTextHandler wraps slog.TextHandler to add an ANSI-colored level
// prefix per record for terminal output.
type ColorTextHandler struct {
	*slog.TextHandler
	w io.Writer
}

// NewColorTextHandler creates a ColorTextHandler writing to w.
func NewColorTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColorTextHandler {
	return &ColorTextHandler{TextHandler: slog.NewTextHandler(w, opts), w: w}
}

// Handle implements slog.Handler. The colored prefix is written straight to
// the underlying writer; injecting escape codes into the record itself would
// get them quoted away by TextHandler.
func (h *ColorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var colorCode string
	switch r.Level {
	case slog.LevelDebug:
		colorCode = "\033[36m" // Cyan
	case slog.LevelInfo:
		colorCode = "\033[32m" // Green
	case slog.LevelWarn:
		colorCode = "\033[33m" // Yellow
	case slog.LevelError:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m"
	}
	if _, err := io.WriteString(h.w, colorCode+r.Level.String()+"\033[0m  "); err != nil {
		return err
	}
	return h.TextHandler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler keeping the colored prefix.
func (h *ColorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorTextHandler{TextHandler: h.TextHandler.WithAttrs(attrs).(*slog.TextHandler), w: h.w}
}

// WithGroup implements slog.Handler keeping the colored prefix.
func (h *ColorTextHandler) WithGroup(name string) slog.Handler {
	return &ColorTextHandler{TextHandler: h.TextHandler.WithGroup(name).(*slog.TextHandler), w: h.w}
}
