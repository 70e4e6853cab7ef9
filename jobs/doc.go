// Package jobs tracks in-flight asynchronous executions keyed by identity.
//
// A Registry holds at most one live Job per key. Launching a job under a key
// that already has a live job cancels the old one before the new one is
// stored, which gives callers "latest wins" semantics per key:
//
//	reg := jobs.NewRegistry()
//	job, previous, err := reg.Launch(ctx, "SelectMovie:1", func(job *jobs.Job) {
//	    // stop promptly once job.Context() is done
//	})
//
// Cancellation is cooperative. A cancelled job's context is done and its
// status is Cancelled, but its goroutine keeps running until the function
// observes the cancellation and returns. Callers that apply side effects on
// behalf of a job must check Job.Context().Err() at the point of
// application.
//
// Lifecycle of one job instance:
//
//	Idle → Running → Completed
//	  ↘       ↘
//	   Cancelled
//
// Completed and Cancelled are terminal. A new Launch for the same key always
// creates a fresh Job.
package jobs
