// Package cancel provides the abort signal of a benchmark sweep.
//
// The sweep polls the signal between iterations and stops once it is
// raised. Workers inside a run never consult it, so the measured write path
// carries no abort check.
//
// Two implementations:
//   - AtomicCanceler: a single atomic.Bool, for loops that only poll
//   - ContextCanceler: a cancelable context.Context, handed to primitives
//     whose acquire call takes a context and must wake up on abort
package cancel

// Canceler signals that a sweep has been aborted.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true once the run has been aborted.
	Done() bool

	// Cancel aborts the run. Safe to call multiple times.
	Cancel()
}
