package orchestrate

import (
	"context"
	"iter"

	"github.com/tailored-agentic-units/statekit/async"
	"github.com/tailored-agentic-units/statekit/machine"
	"github.com/tailored-agentic-units/statekit/paging"
)

// PageLens locates a paging.Container inside the state S.
type PageLens[S, T any] struct {
	Get func(S) paging.Container[T]
	Set func(S, paging.Container[T]) S

	// Fail, when set, records a failed page load, e.g. in an error field.
	// The container has already been marked idle.
	Fail func(S, error) S
}

// Fold returns the merge policy for page results:
//
//	Loading       -> container marked loading
//	Success(page) -> page stored at its index, Available replaced
//	Failure(err)  -> container idle, pages and Available untouched, Fail(err)
//
// A page whose request cannot be mapped to an index is treated as a
// failure with paging.ErrInvalidRequest.
func (l PageLens[S, T]) Fold() Fold[S, paging.Page[T]] {
	return func(state S, result async.Result[paging.Page[T]]) S {
		container := l.Get(state)

		switch result.Status() {
		case async.StatusLoading:
			return l.Set(state, container.Loading())
		case async.StatusSuccess:
			page, _ := result.Value()
			if err := page.Request.Validate(); err != nil {
				return l.fail(state, container, err)
			}
			return l.Set(state, container.Merge(page))
		default:
			return l.fail(state, container, result.Err())
		}
	}
}

func (l PageLens[S, T]) fail(state S, container paging.Container[T], err error) S {
	state = l.Set(state, container.Fail())
	if l.Fail != nil {
		state = l.Fail(state, err)
	}
	return state
}

// LoadPage loads the single page addressed by req into the container l
// points at. An invalid req fails without calling op.
func LoadPage[S, T any](ctx context.Context, req paging.Request, op Operation[paging.Request, paging.Page[T]], l PageLens[S, T]) iter.Seq[machine.Update[S]] {
	checked := func(ctx context.Context, req paging.Request) (paging.Page[T], error) {
		if err := req.Validate(); err != nil {
			return paging.Page[T]{}, err
		}
		return op(ctx, req)
	}
	return Execute(ctx, req, checked, l.Fold())
}

// LoadPages merges every page op streams for req into the container l
// points at, in arrival order.
func LoadPages[S, T any](ctx context.Context, req paging.Request, op StreamOperation[paging.Request, paging.Page[T]], l PageLens[S, T]) iter.Seq[machine.Update[S]] {
	return ExecuteStream(ctx, req, op, l.Fold())
}
