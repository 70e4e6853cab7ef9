package orchestrate

import (
	"context"
	"iter"

	"github.com/tailored-agentic-units/statekit/async"
)

// Operation produces a single value from input.
type Operation[I, T any] func(ctx context.Context, input I) (T, error)

// StreamOperation produces a sequence of values from input. Each pair is
// either a value or an error; the sequence may continue after an error.
type StreamOperation[I, T any] func(ctx context.Context, input I) iter.Seq2[T, error]

// Single yields Loading, runs op, and yields its outcome as Success or
// Failure. op is not started until the consumer asks for the second result.
// If ctx is done by the time op returns, nothing is yielded after Loading.
func Single[I, T any](ctx context.Context, input I, op Operation[I, T]) iter.Seq[async.Result[T]] {
	return func(yield func(async.Result[T]) bool) {
		if !yield(async.Loading[T]()) {
			return
		}

		value, err := op(ctx, input)
		if ctx.Err() != nil {
			return
		}
		yield(async.From(value, err))
	}
}

// Stream yields Loading once and then one Success or Failure for every pair
// op produces, in order. It stops as soon as ctx is done.
func Stream[I, T any](ctx context.Context, input I, op StreamOperation[I, T]) iter.Seq[async.Result[T]] {
	return func(yield func(async.Result[T]) bool) {
		if !yield(async.Loading[T]()) {
			return
		}

		for value, err := range op(ctx, input) {
			if ctx.Err() != nil {
				return
			}
			if !yield(async.From(value, err)) {
				return
			}
		}
	}
}
