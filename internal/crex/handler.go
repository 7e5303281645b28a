package crex

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Handler is a [slog.Handler] that can be reconfigured after construction.
//
// chariotd creates a handler before flags are parsed (so init-time logging
// has somewhere to go), then calls SetLevel/SetFormatter/SetStream/Flush
// once the CLI knows the final verbosity and output stream.
type Handler interface {
	slog.Handler
	SetLevel(level slog.Level)
	SetFormatter(f Formatter)
	SetStream(w io.Writer)
	Flush()
}

// shared holds the mutable configuration and pending buffer common to a
// handler and all handlers derived from it via WithGroup/WithAttrs.
type shared struct {
	mu        sync.Mutex
	level     slog.Level
	formatter Formatter
	stream    io.Writer
	committed bool
	buffered  []bufferedRecord
}

type bufferedRecord struct {
	record slog.Record
	groups []string
	attrs  []slog.Attr
}

type handler struct {
	s      *shared
	groups []string
	attrs  []slog.Attr
}

// NewHandler creates a handler at [slog.LevelInfo] that buffers records
// until Flush is called.
func NewHandler() Handler {
	return &handler{
		s: &shared{
			level:     slog.LevelInfo,
			formatter: NewPrettyFormatter(false),
			stream:    os.Stderr,
		},
	}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return level >= h.s.level
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	if !h.s.committed {
		h.s.buffered = append(h.s.buffered, bufferedRecord{record: r, groups: h.groups, attrs: h.attrs})
		return nil
	}

	_, err := h.s.stream.Write(h.s.formatter.Format(r, h.groups, h.attrs))
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next = append(next, h.attrs...)
	next = append(next, attrs...)
	return &handler{s: h.s, groups: h.groups, attrs: next}
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := make([]string, 0, len(h.groups)+1)
	next = append(next, h.groups...)
	next = append(next, name)
	return &handler{s: h.s, groups: next, attrs: h.attrs}
}

func (h *handler) SetLevel(level slog.Level) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.s.level = level
}

func (h *handler) SetFormatter(f Formatter) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.s.formatter = f
}

func (h *handler) SetStream(w io.Writer) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.s.stream = w
}

// Flush commits the handler's current configuration, writing every buffered
// record with the formatter and stream now in effect, and switches the
// handler to write future records immediately.
func (h *handler) Flush() {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	h.s.committed = true
	for _, b := range h.s.buffered {
		h.s.stream.Write(h.s.formatter.Format(b.record, b.groups, b.attrs))
	}
	h.s.buffered = nil
}
