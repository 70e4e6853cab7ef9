// Package observability carries execution events out of the state-machine
// core. Level values align with OpenTelemetry SeverityNumbers so events can
// be forwarded to OTel collectors without translation.
//
// Observers never influence execution: a slow or failing observer delays
// only itself, and nothing an observer does is reported back to the caller
// of Reduce or Cancel.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is an event severity on the OTel SeverityNumber scale.
type Level int

const (
	LevelVerbose Level = 5
	LevelInfo    Level = 9
	LevelWarning Level = 13
	LevelError   Level = 17
)

// severity is one OTel severity band: every Level up to and including
// ceiling shares its text and slog level.
type severity struct {
	ceiling Level
	text    string
	slog    slog.Level
}

var severities = []severity{
	{ceiling: 4, text: "TRACE", slog: slog.LevelDebug},
	{ceiling: 8, text: "DEBUG", slog: slog.LevelDebug},
	{ceiling: 12, text: "INFO", slog: slog.LevelInfo},
	{ceiling: 16, text: "WARN", slog: slog.LevelWarn},
	{ceiling: 20, text: "ERROR", slog: slog.LevelError},
}

var fatal = severity{text: "FATAL", slog: slog.LevelError}

func (l Level) severity() severity {
	for _, s := range severities {
		if l <= s.ceiling {
			return s
		}
	}
	return fatal
}

// String returns the OTel severity text for the level.
func (l Level) String() string {
	return l.severity().text
}

// SlogLevel maps the level onto slog. TRACE collapses into Debug and FATAL
// into Error.
func (l Level) SlogLevel() slog.Level {
	return l.severity().slog
}

// EventType identifies the kind of event. Each package defines its own
// constants (e.g. "machine.reduce", "machine.job.cancel").
type EventType string

// Event is emitted by the core at key execution points. Data carries
// execution telemetry (identities, counts, durations), never state values.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events for logging, tracing, or metrics.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// LevelEnabler is implemented by observers that can report up front whether
// they would record an event at level. The machine uses it to skip building
// per-update events nobody reads.
type LevelEnabler interface {
	Enabled(ctx context.Context, level Level) bool
}

// Enabled reports whether obs wants events at level. Observers that do not
// implement LevelEnabler want everything.
func Enabled(ctx context.Context, obs Observer, level Level) bool {
	if e, ok := obs.(LevelEnabler); ok {
		return e.Enabled(ctx, level)
	}
	return true
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}
