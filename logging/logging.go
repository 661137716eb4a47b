// Package logging defines the logger capability scripts reach through their
// dependencies, plus two implementations: one backed by log/slog and an
// in-memory recorder.
package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Entry is one log record produced by a script.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

// Error builds an error-level entry.
func Error(msg string, attrs ...slog.Attr) Entry {
	return Entry{Level: slog.LevelError, Message: msg, Attrs: attrs}
}

// Warn builds a warn-level entry.
func Warn(msg string, attrs ...slog.Attr) Entry {
	return Entry{Level: slog.LevelWarn, Message: msg, Attrs: attrs}
}

// Info builds an info-level entry.
func Info(msg string, attrs ...slog.Attr) Entry {
	return Entry{Level: slog.LevelInfo, Message: msg, Attrs: attrs}
}

// Debug builds a debug-level entry.
func Debug(msg string, attrs ...slog.Attr) Entry {
	return Entry{Level: slog.LevelDebug, Message: msg, Attrs: attrs}
}

// Logger is the logging capability. Implementations apply their own level
// filtering and must be safe for concurrent use.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// HasLogger is satisfied by dependency values that carry a Logger.
type HasLogger interface {
	Logger() Logger
}

// ResolveLogger returns logger, or slog.Default() when logger is nil.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Slog writes entries to a *slog.Logger. Level filtering is done by the
// logger's handler.
type Slog struct {
	logger *slog.Logger
}

// NewSlog wraps logger; a nil logger means slog.Default().
func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: ResolveLogger(logger)}
}

func (s *Slog) Log(ctx context.Context, entry Entry) error {
	s.logger.LogAttrs(ctx, entry.Level, entry.Message, entry.Attrs...)
	return nil
}

// Recorder keeps entries at or above MinLevel in memory.
type Recorder struct {
	MinLevel slog.Level

	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Log(_ context.Context, entry Entry) error {
	if entry.Level < r.MinLevel {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// Entries returns a copy of the recorded entries in call order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// ParseLevel maps "debug", "info", "warn" or "error" (any case) onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return level, nil
}
