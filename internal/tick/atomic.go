package tick

import (
	"sync/atomic"
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// AtomicTicker compares runtime.nanotime against the last tick with one
// atomic load per call.
type AtomicTicker struct {
	interval int64 // nanoseconds
	lastTick atomic.Int64
	ticks    atomic.Uint64
}

// NewAtomicTicker creates an AtomicTicker with the specified interval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	t := &AtomicTicker{
		interval: int64(interval),
	}
	t.lastTick.Store(nanotime())
	return t
}

// Tick returns true if the interval has elapsed since the last tick.
// When several goroutines poll, the CAS lets exactly one of them observe
// each tick.
func (a *AtomicTicker) Tick() bool {
	now := nanotime()
	last := a.lastTick.Load()

	if now-last < a.interval {
		return false
	}
	if !a.lastTick.CompareAndSwap(last, now) {
		return false
	}
	a.ticks.Add(1)
	return true
}

// Reset starts a new interval from now. The tick count is kept.
func (a *AtomicTicker) Reset() {
	a.lastTick.Store(nanotime())
}

// Stop is a no-op for AtomicTicker (no resources to release).
func (a *AtomicTicker) Stop() {}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}

// Ticks returns how many times Tick has returned true.
func (a *AtomicTicker) Ticks() uint64 {
	return a.ticks.Load()
}
