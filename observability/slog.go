package observability

import (
	"context"
	"log/slog"
)

// SlogObserver emits events to a slog.Logger. The event level is mapped via
// SlogLevel, the event type becomes the log message, and Data keys are
// flattened into top-level attributes.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates a SlogObserver that writes to logger. A nil
// logger means slog.Default() as it is when each event arrives.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) target() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// Enabled reports whether the logger's handler accepts level.
func (o *SlogObserver) Enabled(ctx context.Context, level Level) bool {
	return o.target().Enabled(ctx, level.SlogLevel())
}

func (o *SlogObserver) OnEvent(ctx context.Context, event Event) {
	logger := o.target()
	level := event.Level.SlogLevel()
	if !logger.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, len(event.Data)+1)
	attrs = append(attrs, slog.String("source", event.Source))
	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}
	logger.LogAttrs(ctx, level, string(event.Type), attrs...)
}
