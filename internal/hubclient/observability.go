package hubclient

import (
	"context"
	"io"
	"log/slog"
)

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// LogObserver writes call events through a slog text handler.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"request_id", event.RequestID,
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		o.logger.WarnContext(ctx, "hub_call", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "hub_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}
