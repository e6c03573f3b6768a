package queue

import (
	"runtime"
	"sync/atomic"
)

// RingBuffer is a lock-free SPSC (Single-Producer Single-Consumer) queue.
//
// WARNING: This queue is NOT safe for multiple producers or multiple consumers.
// Using it incorrectly will cause data races and undefined behavior.
//
// The implementation includes runtime guards that panic if the SPSC contract
// is violated. Close must be called by the producer goroutine.
type RingBuffer[T any] struct {
	buf  []T
	mask uint64

	// Cache line padding to prevent false sharing
	_pad0 [56]byte //nolint:unused

	head atomic.Uint64 // Written by producer, read by consumer

	_pad1 [56]byte //nolint:unused

	tail atomic.Uint64 // Written by consumer, read by producer

	_pad2 [56]byte //nolint:unused

	closed atomic.Bool

	// SPSC guards: detect concurrent misuse
	pushActive atomic.Uint32
	popActive  atomic.Uint32
}

// NewRingBuffer creates a RingBuffer with the specified size.
// Size will be rounded up to the next power of 2.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	n := nextPow2(size)
	return &RingBuffer[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

// TryPush adds an item without waiting.
// Returns false if the queue is full.
//
// SPSC CONTRACT: Only ONE goroutine may push.
func (r *RingBuffer[T]) TryPush(v T) (bool, error) {
	// SPSC guard: panic if concurrent Push detected
	if !r.pushActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Push on SPSC RingBuffer - only one producer allowed")
	}
	defer r.pushActive.Store(0)

	if r.closed.Load() {
		return false, ErrClosed
	}

	head := r.head.Load()
	tail := r.tail.Load()

	// Check if full
	if head-tail >= uint64(len(r.buf)) {
		return false, nil
	}

	r.buf[head&r.mask] = v

	// Publish (store-release semantics via atomic)
	r.head.Store(head + 1)

	return true, nil
}

// Push adds an item, yielding while the ring is full. Pushing more than
// Cap() items needs a consumer running concurrently.
func (r *RingBuffer[T]) Push(v T) error {
	for {
		ok, err := r.TryPush(v)
		if err != nil || ok {
			return err
		}
		runtime.Gosched()
	}
}

// TryPop removes the oldest item without waiting.
// Returns false if the queue is empty.
//
// SPSC CONTRACT: Only ONE goroutine may pop.
func (r *RingBuffer[T]) TryPop() (T, bool) {
	// SPSC guard: panic if concurrent Pop detected
	if !r.popActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Pop on SPSC RingBuffer - only one consumer allowed")
	}
	defer r.popActive.Store(0)

	tail := r.tail.Load()
	head := r.head.Load()

	if tail >= head {
		var zero T
		return zero, false
	}

	v := r.buf[tail&r.mask]
	var zero T
	r.buf[tail&r.mask] = zero

	// Consume (store-release semantics via atomic)
	r.tail.Store(tail + 1)

	return v, true
}

// Pop removes the oldest item, yielding while the ring is open and empty.
func (r *RingBuffer[T]) Pop() (T, bool) {
	for {
		if v, ok := r.TryPop(); ok {
			return v, true
		}
		// The producer closes after its last push, so one more look
		// after observing closed cannot miss an item.
		if r.closed.Load() {
			return r.TryPop()
		}
		runtime.Gosched()
	}
}

// Close stops further pushes.
func (r *RingBuffer[T]) Close() {
	r.closed.Store(true)
}

// State reports the life-cycle phase.
func (r *RingBuffer[T]) State() State {
	switch {
	case !r.closed.Load():
		return Open
	case r.Len() > 0:
		return Draining
	default:
		return Closed
	}
}

// Len returns the current number of items in the queue.
// This is an approximation and may be slightly stale.
func (r *RingBuffer[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(head - tail)
}

// Cap returns the capacity of the queue.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}
