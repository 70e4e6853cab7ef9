package observability

import (
	"context"
	"sync"
)

// CaptureObserver records every event it receives. It is safe for
// concurrent use and is mainly intended for tests and diagnostics.
type CaptureObserver struct {
	mu     sync.Mutex
	events []Event
}

func NewCaptureObserver() *CaptureObserver {
	return &CaptureObserver{}
}

func (c *CaptureObserver) OnEvent(ctx context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of the recorded events in arrival order.
func (c *CaptureObserver) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// OfType returns the recorded events with the given type.
func (c *CaptureObserver) OfType(eventType EventType) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []Event
	for _, e := range c.events {
		if e.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// Reset discards all recorded events.
func (c *CaptureObserver) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
