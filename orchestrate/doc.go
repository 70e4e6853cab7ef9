// Package orchestrate turns plain Go operations into the update sequences a
// machine.Reducer returns.
//
// An operation is wrapped in two steps. Single and Stream run it and report
// progress as async.Result values:
//
//	Single:  Loading, Success(v) | Failure(err)
//	Stream:  Loading, Success(v1), Success(v2), ... (one result per pair)
//
// Updates folds each result into the state with a caller-supplied function,
// producing one machine.Update per result. Execute and ExecuteStream combine
// both steps:
//
//	list := func(ctx context.Context, _ struct{}) ([]Movie, error) {
//	    return catalog.List(ctx)
//	}
//
//	reducer := func(ctx context.Context, a LoadMovies) iter.Seq[machine.Update[State]] {
//	    return orchestrate.Execute(ctx, struct{}{}, list, func(s State, r async.Result[[]Movie]) State {
//	        s.IsLoading = r.IsLoading()
//	        s.Movies, _ = r.Value()
//	        return s
//	    })
//	}
//
// Methods that already take an input, such as catalog.Get, can be passed
// directly as an Operation.
//
// Cancellation is never reported as a Failure: once ctx is done the
// sequences stop without yielding anything further.
//
// LoadPage and LoadPages apply the same helpers to a paging.Container held
// in the state, located through a PageLens.
package orchestrate
