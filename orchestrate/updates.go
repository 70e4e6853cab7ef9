package orchestrate

import (
	"context"
	"iter"

	"github.com/tailored-agentic-units/statekit/async"
	"github.com/tailored-agentic-units/statekit/machine"
)

// Fold merges one result into the state.
type Fold[S, T any] func(state S, result async.Result[T]) S

// Updates maps every result to an update that folds it into the state.
func Updates[S, T any](results iter.Seq[async.Result[T]], fold Fold[S, T]) iter.Seq[machine.Update[S]] {
	return func(yield func(machine.Update[S]) bool) {
		for result := range results {
			update := func(state S) S {
				return fold(state, result)
			}
			if !yield(update) {
				return
			}
		}
	}
}

// Execute is Updates over Single.
func Execute[S, I, T any](ctx context.Context, input I, op Operation[I, T], fold Fold[S, T]) iter.Seq[machine.Update[S]] {
	return Updates(Single(ctx, input, op), fold)
}

// ExecuteStream is Updates over Stream.
func ExecuteStream[S, I, T any](ctx context.Context, input I, op StreamOperation[I, T], fold Fold[S, T]) iter.Seq[machine.Update[S]] {
	return Updates(Stream(ctx, input, op), fold)
}
