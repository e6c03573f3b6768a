// Package queue provides closeable FIFO queues that feed a single consumer.
//
// This package offers four implementations of the Queue interface:
//   - Unbounded: mutex + sync.Cond guarded slice, any number of producers
//   - ChannelQueue: buffered channel, any number of producers, blocks when full
//   - RingBuffer: lock-free SPSC ring, exactly one producer
//   - Sharded: go-lock-free-ring sharded MPSC ring, producers pick a shard
//
// Every queue moves through Open -> Draining -> Closed. Close ends the Open
// phase; the queue is Closed once the consumer has taken the last item, and
// Pop then reports false. Pushing after Close returns ErrClosed.
//
// # RingBuffer Safety (IMPORTANT)
//
// RingBuffer is a Single-Producer Single-Consumer (SPSC) queue.
// It is NOT safe for multiple goroutines to call Push() or Pop() concurrently.
// Runtime guards panic on misuse.
package queue

import "github.com/pkg/errors"

// ErrClosed is returned by Push once Close has been called.
var ErrClosed = errors.New("queue: push on closed queue")

// Queue is a FIFO queue drained by one consumer goroutine.
type Queue[T any] interface {
	// Push appends an item. Returns ErrClosed after Close.
	Push(T) error

	// Pop removes the oldest item, blocking until one is available.
	// Returns false once the queue is closed and empty.
	Pop() (T, bool)

	// Close stops further pushes. Items already queued remain poppable.
	// Calling Close more than once is a no-op.
	Close()

	// State reports the queue's life-cycle phase.
	State() State
}

// ProducerQueue is implemented by queues that route each producer to its
// own lane.
type ProducerQueue[T any] interface {
	Queue[T]

	// PushFrom appends an item on behalf of the given producer.
	PushFrom(producer uint64, v T) error
}

// State is the life-cycle phase of a queue.
type State int

const (
	// Open accepts pushes.
	Open State = iota
	// Draining is closed for pushes but still holds items.
	Draining
	// Closed is closed and empty.
	Closed
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Draining:
		return "draining"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Drain pops items from q and passes each to fn until q is closed and empty
// or fn returns an error.
func Drain[T any](q Queue[T], fn func(T) error) error {
	for {
		v, ok := q.Pop()
		if !ok {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// nextPow2 rounds n up to a power of two, minimum 1.
func nextPow2(n int) uint64 {
	p := uint64(1)
	for p < uint64(n) {
		p <<= 1
	}
	return p
}
