// Package tick throttles periodic work inside hot loops, such as the
// progress lines the harness emits while a sweep runs.
//
// This package offers these implementations of the Ticker interface:
//   - AtomicTicker: atomic timestamp comparison using runtime.nanotime
//   - BatchTicker: consults another Ticker only every N calls
//   - Never: a Ticker that never fires, for disabled progress output
//
// None of them touch the runtime's timer heap, so polling one after every
// benchmark iteration does not perturb what is being measured.
package tick

import "time"

// Ticker signals when a time interval has elapsed.
//
// AtomicTicker and Never are safe for concurrent use. BatchTicker keeps an
// unsynchronized call counter and belongs to a single polling goroutine.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	Stop()
}

// DefaultInterval is a reasonable default for testing.
const DefaultInterval = 100 * time.Millisecond

// New returns a Ticker firing every interval, or Never when the interval
// is not positive.
func New(interval time.Duration) Ticker {
	if interval <= 0 {
		return Never{}
	}
	return NewAtomicTicker(interval)
}

// Never is a Ticker that never fires.
type Never struct{}

// Tick always returns false.
func (Never) Tick() bool { return false }

// Reset is a no-op.
func (Never) Reset() {}

// Stop is a no-op.
func (Never) Stop() {}
