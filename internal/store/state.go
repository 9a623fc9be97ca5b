package store

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

// LoadState distinguishes "never loaded" and "load failed" from an empty
// collection.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load_failed"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of a store's cache.
type Snapshot[T domain.Record] struct {
	Items []T
	State LoadState
	Err   error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmed is a Confirmer that always agrees, for callers that have
// already confirmed out of band (the dashboard confirms in the browser).
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Reporter receives failures that leave the cache stale.
type Reporter interface {
	LoadFailed(ctx context.Context, section domain.Section, err error)
}

// LogReporter writes failures through a slog text handler.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a Reporter that logs to w.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

func (r *LogReporter) LoadFailed(ctx context.Context, section domain.Section, err error) {
	r.logger.WarnContext(ctx, "collection_load_failed",
		"section", string(section),
		"error", err,
	)
}

type noopReporter struct{}

func (noopReporter) LoadFailed(context.Context, domain.Section, error) {}
