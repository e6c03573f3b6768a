package queue

import "sync"

// ChannelQueue wraps a buffered channel as a Queue.
//
// This is the standard library approach. Push blocks while the buffer is
// full; Pop is a plain receive that ends when the channel is closed and
// drained.
type ChannelQueue[T any] struct {
	// mu orders Close after in-flight pushes so a send never hits a
	// closed channel.
	mu     sync.RWMutex
	closed bool
	ch     chan T
}

// NewChannel creates a ChannelQueue with the specified buffer size.
func NewChannel[T any](size int) *ChannelQueue[T] {
	if size < 0 {
		size = 0
	}
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}
}

// Push sends v, blocking while the buffer is full.
func (q *ChannelQueue[T]) Push(v T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	q.ch <- v
	return nil
}

// Pop receives the oldest item.
func (q *ChannelQueue[T]) Pop() (T, bool) {
	v, ok := <-q.ch
	return v, ok
}

// Close closes the underlying channel once all in-flight pushes finished.
func (q *ChannelQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// State reports the life-cycle phase.
func (q *ChannelQueue[T]) State() State {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	switch {
	case !closed:
		return Open
	case len(q.ch) > 0:
		return Draining
	default:
		return Closed
	}
}

// Len returns the current number of items in the queue.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}
