// Package machine implements the reactive state-machine core.
//
// A Machine owns one state value of type S. Callers dispatch actions of type
// A with Reduce; the machine runs the Reducer for the action on its own job
// and applies every Update the reducer yields, in order, to the current
// state. Observers of the state see each intermediate value.
//
// # Reducers and Updates
//
// An Update is a pure function from the old state to the new one. A Reducer
// maps an action to a lazy sequence of updates:
//
//	reducer := func(ctx context.Context, action Action) iter.Seq[machine.Update[State]] {
//	    return func(yield func(machine.Update[State]) bool) {
//	        if !yield(func(s State) State { s.IsLoading = true; return s }) {
//	            return
//	        }
//	        movies, err := catalog.List(ctx)
//	        yield(func(s State) State {
//	            s.IsLoading = false
//	            s.Movies, s.Err = movies, err
//	            return s
//	        })
//	    }
//	}
//
// The orchestrate package builds such sequences from plain operations.
//
// # Identity and cancellation
//
// Every action has an identity: either A implements Identifier or the
// machine is built with WithIdentity. Actions with equal identities share a
// slot in the job registry. Reducing an action whose slot is busy cancels
// the running job first ("latest wins" per identity, not per action type):
//
//	m.Reduce(SelectMovie{ID: "1"}) // job 1
//	m.Reduce(SelectMovie{ID: "1"}) // cancels job 1, starts job 2
//	m.Reduce(SelectMovie{ID: "2"}) // runs alongside job 2
//
// Cancellation is cooperative. The reducer's context is cancelled and the
// machine drops every update the cancelled job yields afterwards, including
// one already in flight. Cancel additionally applies a mandatory rollback
// update to repair state the job left behind:
//
//	m.Cancel(SelectMovie{ID: "1"}, func(s State) State {
//	    s.IsLoading, s.SelectedMovie = false, nil
//	    return s
//	})
//
// The rollback is applied even when nothing was running.
//
// # Ordering
//
// Updates of one job are applied strictly in the order the reducer yields
// them. Updates from different jobs interleave in completion order. All
// state mutation happens under a single mutex, so every update sees the
// result of the previous one.
//
// # Observing state
//
// Observe returns a channel that first delivers the current state and then
// every applied state in order. Delivery never blocks the machine: each
// subscriber has its own unbounded queue.
//
// # Closing
//
// Close cancels every job, waits for job goroutines up to the configured
// shutdown timeout, and closes all subscriptions once their queues drain.
// After Close, Reduce and Cancel return ErrClosed; State keeps returning
// the last value.
package machine
