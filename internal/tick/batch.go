package tick

// BatchTicker forwards only every Nth call to an inner Ticker, amortizing
// the clock read across loop iterations.
//
// With every=16 and an inner 1s AtomicTicker, the clock is read once per
// 16 calls and a tick fires on the first such read a second after the
// previous tick.
type BatchTicker struct {
	inner Ticker
	every int
	count int
}

// NewBatch wraps inner so that it is consulted every N calls. Values of
// every below 1 are treated as 1.
func NewBatch(inner Ticker, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{
		inner: inner,
		every: every,
	}
}

// Tick returns true if this call is a batch boundary and the inner ticker
// fires.
func (b *BatchTicker) Tick() bool {
	b.count++
	if b.count%b.every != 0 {
		return false
	}
	return b.inner.Tick()
}

// Reset clears the call counter and resets the inner ticker.
func (b *BatchTicker) Reset() {
	b.count = 0
	b.inner.Reset()
}

// Stop stops the inner ticker.
func (b *BatchTicker) Stop() {
	b.inner.Stop()
}

// Every returns the batch size.
func (b *BatchTicker) Every() int {
	return b.every
}
