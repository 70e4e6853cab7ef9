package jobs

import (
	"context"
	"fmt"
	"sync"
)

// Registry maps keys to their live job. All methods are safe for concurrent
// use.
type Registry struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	closed bool
	wg     sync.WaitGroup
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*Job)}
}

// Launch cancels the live job under key, if any, registers a new job in its
// place, and runs fn on a new goroutine. The job's context derives from
// parent; fn must return promptly once job.Context() is done.
//
// The previous job is returned so callers can report the supersession; it
// is nil when nothing was running under key.
func (r *Registry) Launch(parent context.Context, key string, fn func(job *Job)) (job, previous *Job, err error) {
	if key == "" {
		return nil, nil, ErrEmptyKey
	}
	if fn == nil {
		return nil, nil, ErrNilRun
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, nil, ErrClosed
	}

	previous = r.jobs[key]
	if previous != nil {
		previous.markCancelled()
	}

	job = newJob(parent, key)
	r.jobs[key] = job
	r.wg.Add(1)
	r.mu.Unlock()

	go r.run(job, fn)

	return job, previous, nil
}

func (r *Registry) run(job *Job, fn func(job *Job)) {
	defer r.wg.Done()
	defer func() {
		r.mu.Lock()
		if r.jobs[job.Key] == job {
			delete(r.jobs, job.Key)
		}
		r.mu.Unlock()

		job.finish()
	}()

	if !job.start() {
		return
	}
	fn(job)
	job.complete()
}

// Cancel cancels and removes the live job under key. The boolean reports
// whether a live job was found and moved to Cancelled.
func (r *Registry) Cancel(key string) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[key]
	if !exists {
		return nil, false
	}
	delete(r.jobs, key)
	return job, job.markCancelled()
}

// Get returns the live job under key.
func (r *Registry) Get(key string) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[key]
	return job, exists
}

// Running reports whether a live job is registered under key.
func (r *Registry) Running(key string) bool {
	_, exists := r.Get(key)
	return exists
}

// Len returns the number of live jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// Keys returns the keys of all live jobs in no particular order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.jobs))
	for key := range r.jobs {
		keys = append(keys, key)
	}
	return keys
}

// Wait blocks until no live job remains or ctx is done. Jobs launched while
// waiting are waited for as well.
func (r *Registry) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		live := make([]*Job, 0, len(r.jobs))
		for _, job := range r.jobs {
			live = append(live, job)
		}
		r.mu.Unlock()

		if len(live) == 0 {
			return nil
		}

		for _, job := range live {
			select {
			case <-job.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close cancels every live job, rejects further launches, and waits for all
// job goroutines, including already superseded ones, to return. It returns
// ctx's error if they do not return before ctx is done. Close is idempotent.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	for key, job := range r.jobs {
		job.markCancelled()
		delete(r.jobs, key)
	}
	r.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for jobs to stop: %w", ctx.Err())
	}
}
