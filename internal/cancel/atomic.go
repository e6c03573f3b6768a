package cancel

import "sync/atomic"

// AtomicCanceler uses an atomic.Bool for the abort flag.
//
// Done is a single atomic load, cheap enough to sit in front of every
// lock acquisition without skewing the measurement.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if the sweep has been aborted.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel aborts the sweep.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset clears the flag so the canceler can guard another sweep.
// Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}
