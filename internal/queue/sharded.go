package queue

import (
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Sharded is a Multi-Producer Single-Consumer queue backed by
// go-lock-free-ring. Each producer writes to the shard selected by its id,
// which spreads contention; the consumer reads across all shards.
//
// FIFO order holds per producer, not across producers.
type Sharded[T any] struct {
	r *ring.ShardedRing

	// pending counts items pushed or being pushed and not yet popped.
	// The consumer may only report Closed when it reaches zero.
	pending atomic.Int64
	closed  atomic.Bool
}

// NewSharded creates a Sharded queue. Every shard can hold perShard items,
// so a run that pushes no more than perShard items never spins on a full
// shard. Both sizes are rounded up to powers of 2.
func NewSharded[T any](perShard, shards int) (*Sharded[T], error) {
	n := nextPow2(shards)
	r, err := ring.NewShardedRing(nextPow2(perShard)*n, n)
	if err != nil {
		return nil, errors.Wrap(err, "queue: create sharded ring")
	}
	return &Sharded[T]{r: r}, nil
}

// Push appends v on behalf of producer 0.
func (s *Sharded[T]) Push(v T) error {
	return s.PushFrom(0, v)
}

// PushFrom appends v to the producer's shard, yielding while it is full.
func (s *Sharded[T]) PushFrom(producer uint64, v T) error {
	s.pending.Add(1)
	if s.closed.Load() {
		s.pending.Add(-1)
		return ErrClosed
	}
	for !s.r.Write(producer, v) {
		runtime.Gosched()
	}
	return nil
}

// Pop removes an item from any shard, yielding while the queue is open or
// a push is still in flight.
func (s *Sharded[T]) Pop() (T, bool) {
	for {
		if v, ok := s.r.TryRead(); ok {
			s.pending.Add(-1)
			return v.(T), true
		}
		if s.closed.Load() && s.pending.Load() == 0 {
			var zero T
			return zero, false
		}
		runtime.Gosched()
	}
}

// Close stops further pushes.
func (s *Sharded[T]) Close() {
	s.closed.Store(true)
}

// State reports the life-cycle phase.
func (s *Sharded[T]) State() State {
	switch {
	case !s.closed.Load():
		return Open
	case s.pending.Load() > 0:
		return Draining
	default:
		return Closed
	}
}

// Len returns the number of items pushed and not yet popped.
func (s *Sharded[T]) Len() int {
	return int(s.pending.Load())
}
