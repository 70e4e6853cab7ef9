package machine

import (
	"context"
	"sync"
	"sync/atomic"
)

// subscription delivers states to one observer in publish order. Pushes
// never block: values wait in an unbounded queue until the pump goroutine
// hands them to the consumer.
type subscription[T any] struct {
	out     chan T
	context context.Context

	mu     sync.Mutex
	queue  []T
	signal chan struct{}
	closed atomic.Int32
}

func newSubscription[T any](ctx context.Context, initial T) *subscription[T] {
	return &subscription[T]{
		out:     make(chan T),
		context: ctx,
		queue:   []T{initial},
		signal:  make(chan struct{}, 1),
	}
}

func (s *subscription[T]) push(value T) {
	if s.IsClosed() {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, value)
	s.mu.Unlock()

	s.notify()
}

// Close stops accepting values. Already queued values are still delivered.
func (s *subscription[T]) Close() {
	if s.closed.CompareAndSwap(0, 1) {
		s.notify()
	}
}

func (s *subscription[T]) IsClosed() bool {
	return s.closed.Load() == 1
}

func (s *subscription[T]) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscription[T]) next() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if len(s.queue) == 0 {
		return zero, false
	}
	value := s.queue[0]
	s.queue[0] = zero
	s.queue = s.queue[1:]
	return value, true
}

// pump forwards queued values to out until the subscription is closed and
// drained, or its context is done. onExit runs before out is closed.
func (s *subscription[T]) pump(onExit func()) {
	defer close(s.out)
	defer onExit()

	for {
		value, ok := s.next()
		if !ok {
			if s.IsClosed() {
				return
			}
			select {
			case <-s.signal:
				continue
			case <-s.context.Done():
				return
			}
		}

		select {
		case s.out <- value:
		case <-s.context.Done():
			return
		}
	}
}
