package queue

import "sync"

// Unbounded is a slice-backed queue guarded by a mutex.
//
// Push never blocks. Pop parks on a sync.Cond while the queue is empty.
type Unbounded[T any] struct {
	mu     sync.Mutex
	cond   sync.Cond
	items  []T
	head   int
	closed bool
}

// NewUnbounded creates an Unbounded queue with room for hint items before
// its first reallocation.
func NewUnbounded[T any](hint int) *Unbounded[T] {
	if hint < 0 {
		hint = 0
	}
	q := &Unbounded[T]{
		items: make([]T, 0, hint),
	}
	q.cond.L = &q.mu
	return q
}

// Push appends v. Safe for concurrent producers.
func (q *Unbounded[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.cond.Signal()
	return nil
}

// Pop removes the oldest item, waiting while the queue is open and empty.
func (q *Unbounded[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) && !q.closed {
		q.cond.Wait()
	}

	var zero T
	if q.head == len(q.items) {
		return zero, false
	}

	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return v, true
}

// Close stops further pushes and wakes a waiting consumer.
func (q *Unbounded[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// State reports the life-cycle phase.
func (q *Unbounded[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case !q.closed:
		return Open
	case q.head < len(q.items):
		return Draining
	default:
		return Closed
	}
}

// Len returns the number of queued items.
func (q *Unbounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
