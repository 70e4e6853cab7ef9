package observability

import "context"

// NoOpObserver discards all events and reports every level as disabled, so
// machines built with it skip event construction entirely.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(context.Context, Event) {}

func (NoOpObserver) Enabled(context.Context, Level) bool { return false }
