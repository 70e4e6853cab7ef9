package async

import "fmt"

// Status identifies the active variant of a Result.
type Status uint8

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Result is a tagged union of Loading, Success(T), and Failure(error).
// Exactly one variant is active at a time.
type Result[T any] struct {
	status Status
	value  T
	err    error
}

// Loading returns a Result with no payload.
func Loading[T any]() Result[T] {
	return Result[T]{status: StatusLoading}
}

// Success wraps the value produced by a completed operation.
func Success[T any](value T) Result[T] {
	return Result[T]{status: StatusSuccess, value: value}
}

// Failure wraps the error returned by an operation. Failure panics when err
// is nil: a failed operation without an error is a caller bug.
func Failure[T any](err error) Result[T] {
	if err == nil {
		panic("async: Failure called with nil error")
	}
	return Result[T]{status: StatusFailure, err: err}
}

// From converts a Go (value, error) pair into a terminal Result.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

func (r Result[T]) Status() Status  { return r.status }
func (r Result[T]) IsLoading() bool { return r.status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.status == StatusSuccess }
func (r Result[T]) IsFailure() bool { return r.status == StatusFailure }

// IsTerminal reports whether r is Success or Failure.
func (r Result[T]) IsTerminal() bool { return r.status != StatusLoading }

// Value returns the Success payload. ok is false for Loading and Failure.
func (r Result[T]) Value() (value T, ok bool) {
	return r.value, r.status == StatusSuccess
}

// Err returns the Failure error, or nil for the other variants.
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the payload and error in Go's conventional shape. A Loading
// result returns ErrPending.
func (r Result[T]) Get() (T, error) {
	switch r.status {
	case StatusSuccess:
		return r.value, nil
	case StatusFailure:
		return r.value, r.err
	default:
		return r.value, ErrPending
	}
}

func (r Result[T]) String() string {
	switch r.status {
	case StatusSuccess:
		return fmt.Sprintf("Success(%v)", r.value)
	case StatusFailure:
		return fmt.Sprintf("Failure(%v)", r.err)
	default:
		return "Loading"
	}
}

// Match dispatches on the active variant and returns the selected branch's
// value.
func Match[T, R any](r Result[T], loading func() R, success func(T) R, failure func(error) R) R {
	switch r.status {
	case StatusSuccess:
		return success(r.value)
	case StatusFailure:
		return failure(r.err)
	default:
		return loading()
	}
}

// Map transforms a Success payload. Loading and Failure pass through with
// their error unchanged.
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	switch r.status {
	case StatusSuccess:
		return Success(fn(r.value))
	case StatusFailure:
		return Result[R]{status: StatusFailure, err: r.err}
	default:
		return Loading[R]()
	}
}
