package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a single job instance.
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Terminal reports whether s is Completed or Cancelled.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Job is a handle to one execution registered under a key.
type Job struct {
	ID      string
	Key     string
	Created time.Time

	ctx    context.Context
	cancel context.CancelFunc
	status atomic.Int32
	done   chan struct{}
}

func newJob(parent context.Context, key string) *Job {
	ctx, cancel := context.WithCancel(parent)
	return &Job{
		ID:      uuid.New().String(),
		Key:     key,
		Created: time.Now(),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Context is done once the job is cancelled or its parent context ends.
func (j *Job) Context() context.Context {
	return j.ctx
}

func (j *Job) Status() Status {
	return Status(j.status.Load())
}

// Done is closed when the job's function has returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancelled reports whether the job was cancelled before it completed.
func (j *Job) Cancelled() bool {
	return j.Status() == StatusCancelled
}

func (j *Job) start() bool {
	return j.status.CompareAndSwap(int32(StatusIdle), int32(StatusRunning))
}

// markCancelled moves a non-terminal job to Cancelled and cancels its
// context. It reports whether this call performed the transition.
func (j *Job) markCancelled() bool {
	for {
		current := Status(j.status.Load())
		if current.Terminal() {
			return false
		}
		if j.status.CompareAndSwap(int32(current), int32(StatusCancelled)) {
			j.cancel()
			return true
		}
	}
}

// complete moves a running job to Completed. Once it has, markCancelled
// no longer applies, even though the job is still registered until finish.
func (j *Job) complete() bool {
	return j.status.CompareAndSwap(int32(StatusRunning), int32(StatusCompleted))
}

func (j *Job) finish() {
	j.cancel()
	close(j.done)
}
