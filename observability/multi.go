package observability

import "context"

// MultiObserver fans events out to several observers in order. Nested
// MultiObservers are flattened and nil entries dropped at construction.
type MultiObserver struct {
	observers []Observer
}

func NewMultiObserver(observers ...Observer) *MultiObserver {
	m := &MultiObserver{}
	for _, obs := range observers {
		switch o := obs.(type) {
		case nil:
		case *MultiObserver:
			m.observers = append(m.observers, o.observers...)
		default:
			m.observers = append(m.observers, o)
		}
	}
	return m
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		if Enabled(ctx, obs, event.Level) {
			obs.OnEvent(ctx, event)
		}
	}
}

// Enabled reports whether any member wants events at level.
func (m *MultiObserver) Enabled(ctx context.Context, level Level) bool {
	for _, obs := range m.observers {
		if Enabled(ctx, obs, level) {
			return true
		}
	}
	return false
}

// Len returns the number of member observers after flattening.
func (m *MultiObserver) Len() int {
	return len(m.observers)
}
