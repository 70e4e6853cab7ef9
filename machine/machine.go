package machine

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/tailored-agentic-units/statekit/config"
	"github.com/tailored-agentic-units/statekit/jobs"
	"github.com/tailored-agentic-units/statekit/observability"
	"github.com/tailored-agentic-units/statekit/tracing"
)

// Update transforms the current state into the next one. Updates must not
// mutate their argument.
type Update[S any] func(S) S

// Reducer maps an action to the sequence of updates it produces. The
// sequence should stop promptly once ctx is done.
type Reducer[S, A any] func(ctx context.Context, action A) iter.Seq[Update[S]]

// Identifier is implemented by actions that carry their own registry key.
type Identifier interface {
	Identity() string
}

// Machine owns a state value and the jobs that update it.
type Machine[S, A any] struct {
	name            string
	reducer         Reducer[S, A]
	identify        func(A) string
	observer        observability.Observer
	tracer          trace.TracerProvider
	shutdownTimeout time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	registry *jobs.Registry
	metrics  *Metrics
	closed   atomic.Bool

	// closing is held for writing while closed is set, and for reading
	// across Cancel so a rollback that passed the closed check lands before
	// subscriptions are closed.
	closing sync.RWMutex

	mu          sync.Mutex
	state       S
	subscribers map[*subscription[S]]struct{}
}

// New creates a Machine holding initial. The observer is resolved from
// cfg.Observer unless WithObserver overrides it; an empty name disables
// events.
func New[S, A any](initial S, reducer Reducer[S, A], cfg config.MachineConfig, opts ...Option) (*Machine[S, A], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{context: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	var identify func(A) string
	if o.identity != nil {
		fn, ok := o.identity.(func(A) string)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrIdentityType, o.identity)
		}
		identify = fn
	}

	observer := o.observer
	if observer == nil {
		if cfg.Observer == "" {
			observer = observability.NoOpObserver{}
		} else {
			resolved, err := observability.GetObserver(cfg.Observer)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve observer: %w", err)
			}
			observer = resolved
		}
	}

	ctx, cancel := context.WithCancel(o.context)

	return &Machine[S, A]{
		name:            cfg.Name,
		reducer:         reducer,
		identify:        identify,
		observer:        observer,
		tracer:          o.tracer,
		shutdownTimeout: cfg.ShutdownDeadline(),
		ctx:             ctx,
		cancel:          cancel,
		registry:        jobs.NewRegistry(),
		metrics:         NewMetrics(),
		state:           initial,
		subscribers:     make(map[*subscription[S]]struct{}),
	}, nil
}

// State returns the current state.
func (m *Machine[S, A]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Observe returns a channel that receives the current state immediately and
// then every applied state in order. The channel is closed when ctx is done,
// or after the machine closes and the remaining states have been delivered.
// Callers that stop reading must cancel ctx.
func (m *Machine[S, A]) Observe(ctx context.Context) <-chan S {
	m.mu.Lock()
	sub := newSubscription(ctx, m.state)
	if m.closed.Load() {
		sub.Close()
	} else {
		m.subscribers[sub] = struct{}{}
	}
	m.mu.Unlock()

	m.metrics.RecordSubscriber(1)
	go sub.pump(func() {
		m.mu.Lock()
		delete(m.subscribers, sub)
		m.mu.Unlock()
		m.metrics.RecordSubscriber(-1)
	})

	return sub.out
}

// Reduce starts the reducer for action on a new job, cancelling the running
// job with the same identity first.
func (m *Machine[S, A]) Reduce(action A) error {
	if m.closed.Load() {
		return ErrClosed
	}

	key, err := m.identity(action)
	if err != nil {
		return err
	}

	job, previous, err := m.registry.Launch(m.ctx, key, func(job *jobs.Job) {
		m.run(job, action)
	})
	if err != nil {
		if errors.Is(err, jobs.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("failed to launch job %q: %w", key, err)
	}

	m.observer.OnEvent(m.ctx, observability.Event{
		Type:      EventReduce,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "machine.Reduce",
		Data: map[string]any{
			"machine":  m.name,
			"identity": key,
			"job_id":   job.ID,
		},
	})

	if previous != nil {
		m.metrics.RecordJobCancelled(1)
		m.observer.OnEvent(m.ctx, observability.Event{
			Type:      EventJobCancel,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "machine.Reduce",
			Data: map[string]any{
				"machine":  m.name,
				"identity": key,
				"job_id":   previous.ID,
				"reason":   "superseded",
			},
		})
	}

	return nil
}

// Cancel cancels the running job for action, if any, and then applies
// rollback exactly once. The rollback is applied even when no job was
// running, so it must be safe to apply unconditionally.
func (m *Machine[S, A]) Cancel(action A, rollback Update[S]) error {
	if rollback == nil {
		return ErrNilRollback
	}

	m.closing.RLock()
	defer m.closing.RUnlock()
	if m.closed.Load() {
		return ErrClosed
	}

	key, err := m.identity(action)
	if err != nil {
		return err
	}

	job, cancelled := m.registry.Cancel(key)
	if cancelled {
		m.metrics.RecordJobCancelled(1)
		m.observer.OnEvent(m.ctx, observability.Event{
			Type:      EventJobCancel,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "machine.Cancel",
			Data: map[string]any{
				"machine":  m.name,
				"identity": key,
				"job_id":   job.ID,
				"reason":   "cancel",
			},
		})
	}

	m.commit(nil, rollback)
	m.metrics.RecordUpdateApplied(1)

	m.observer.OnEvent(m.ctx, observability.Event{
		Type:      EventRollback,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "machine.Cancel",
		Data: map[string]any{
			"machine":     m.name,
			"identity":    key,
			"was_running": cancelled,
		},
	})

	return nil
}

// Running reports whether a job is live for action's identity.
func (m *Machine[S, A]) Running(action A) bool {
	key, err := m.identity(action)
	if err != nil {
		return false
	}
	return m.registry.Running(key)
}

// Wait blocks until no job is live or ctx is done.
func (m *Machine[S, A]) Wait(ctx context.Context) error {
	return m.registry.Wait(ctx)
}

// Metrics returns a snapshot of the machine's counters.
func (m *Machine[S, A]) Metrics() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// Close cancels all jobs, waits for them to return for at most the
// configured shutdown timeout, and closes every subscription. It is safe to
// call more than once; later calls return nil.
func (m *Machine[S, A]) Close() error {
	m.closing.Lock()
	swapped := m.closed.CompareAndSwap(false, true)
	m.closing.Unlock()
	if !swapped {
		return nil
	}

	live := m.registry.Len()

	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()

	err := m.registry.Close(ctx)
	m.cancel()
	m.metrics.RecordJobCancelled(live)

	m.mu.Lock()
	for sub := range m.subscribers {
		sub.Close()
	}
	m.mu.Unlock()

	m.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventClose,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "machine.Close",
		Data: map[string]any{
			"machine":        m.name,
			"jobs_cancelled": live,
			"timed_out":      err != nil,
		},
	})

	if err != nil {
		return fmt.Errorf("close machine %q: %w", m.name, err)
	}
	return nil
}

func (m *Machine[S, A]) identity(action A) (string, error) {
	var key string
	switch {
	case m.identify != nil:
		key = m.identify(action)
	default:
		id, ok := any(action).(Identifier)
		if !ok {
			return "", fmt.Errorf("%w: %T", ErrNoIdentity, action)
		}
		key = id.Identity()
	}

	if key == "" {
		return "", fmt.Errorf("%w: %T", ErrEmptyIdentity, action)
	}
	return key, nil
}

func (m *Machine[S, A]) run(job *jobs.Job, action A) {
	ctx, span := tracing.StartSpanWith(job.Context(), m.tracer, "machine.job "+job.Key, "INTERNAL")
	span.WithAttributes(map[string]string{
		"machine.name": m.name,
		"job.id":       job.ID,
		"job.identity": job.Key,
	})

	m.metrics.RecordJobStarted(1)
	verbose := observability.Enabled(ctx, m.observer, observability.LevelVerbose)
	if verbose {
		m.observer.OnEvent(ctx, observability.Event{
			Type:      EventJobStart,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "machine.run",
			Data: map[string]any{
				"machine":  m.name,
				"identity": job.Key,
				"job_id":   job.ID,
			},
		})
	}

	start := time.Now()
	applied := 0
	for update := range m.reducer(ctx, action) {
		if !m.apply(ctx, job, update, verbose) {
			break
		}
		applied++
		span.AddEvent("update")
	}

	if ctx.Err() != nil {
		span.WithAttributes(map[string]string{"job.cancelled": "true"})
		tracing.EndSpan(span, nil)
		return
	}

	m.metrics.RecordJobCompleted(1)
	m.observer.OnEvent(ctx, observability.Event{
		Type:      EventJobComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "machine.run",
		Data: map[string]any{
			"machine":  m.name,
			"identity": job.Key,
			"job_id":   job.ID,
			"updates":  applied,
			"duration": time.Since(start),
		},
	})
	tracing.EndSpan(span, nil)
}

// apply commits update on behalf of a job, dropping it if the job has been
// cancelled. Per-update events are only built when verbose is set.
func (m *Machine[S, A]) apply(ctx context.Context, job *jobs.Job, update Update[S], verbose bool) bool {
	if !m.commit(ctx, update) {
		m.metrics.RecordUpdateDropped(1)
		if !verbose {
			return false
		}
		m.observer.OnEvent(m.ctx, observability.Event{
			Type:      EventUpdateDrop,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "machine.apply",
			Data: map[string]any{
				"machine":  m.name,
				"identity": job.Key,
				"job_id":   job.ID,
			},
		})
		return false
	}

	m.metrics.RecordUpdateApplied(1)
	if !verbose {
		return true
	}
	m.observer.OnEvent(ctx, observability.Event{
		Type:      EventUpdate,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "machine.apply",
		Data: map[string]any{
			"machine":  m.name,
			"identity": job.Key,
			"job_id":   job.ID,
		},
	})
	return true
}

// commit applies update under the state lock and publishes the result. A
// non-nil ctx that is already done vetoes the update; the check happens
// under the same lock Cancel uses for its rollback.
func (m *Machine[S, A]) commit(ctx context.Context, update Update[S]) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx != nil && ctx.Err() != nil {
		return false
	}

	m.state = update(m.state)
	for sub := range m.subscribers {
		sub.push(m.state)
	}
	return true
}
