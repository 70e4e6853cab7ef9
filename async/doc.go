// Package async provides the three-state envelope used to describe the
// outcome of one asynchronous operation.
//
// A Result is exactly one of Loading, Success, or Failure. Loading carries
// no payload, Success carries the operation's value, and Failure carries the
// error returned by the operation unchanged:
//
//	r := async.Success(movies)
//	if v, ok := r.Value(); ok {
//	    render(v)
//	}
//
// The zero Result is Loading, so a freshly declared field reads as "not yet
// resolved" without explicit initialization.
//
// Results are plain values and safe to copy. They are produced by the
// orchestrate package, which turns single-shot and streamed operations into
// Loading → terminal sequences, and consumed by reducers that fold them into
// application state.
package async
