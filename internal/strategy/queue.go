package strategy

import (
	"context"

	"github.com/creachadair/taskgroup"
	"github.com/pkg/errors"

	"github.com/randomizedcoder/syncbench/internal/queue"
	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/worker"
)

// Producers selects who enqueues the write tasks.
type Producers int

const (
	// Inline: the driver enqueues every task itself, closes the queue and
	// only then starts the consumer. Writes land in worker-id order.
	Inline Producers = iota
	// Concurrent: one producer goroutine per worker enqueues its task
	// while the consumer is already draining.
	Concurrent
)

func (p Producers) String() string {
	switch p {
	case Inline:
		return "inline"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// Backend selects the queue implementation.
type Backend int

const (
	// Unbounded is the mutex + sync.Cond slice queue.
	Unbounded Backend = iota
	// Channel is a buffered channel sized to the worker count.
	Channel
	// Ring is the SPSC ring buffer. Inline producers only.
	Ring
	// Sharded is the go-lock-free-ring MPSC ring, one shard per producer.
	Sharded
)

func (b Backend) String() string {
	switch b {
	case Unbounded:
		return "unbounded"
	case Channel:
		return "channel"
	case Ring:
		return "ring"
	case Sharded:
		return "sharded"
	default:
		return "unknown"
	}
}

// minShardSlots keeps every shard of the sharded ring at a usable size.
const minShardSlots = 8

// Queue turns each worker into a write task and has a single consumer
// goroutine run the tasks in dequeue order. The sink is only ever touched by
// the consumer, so no lock guards the write.
type Queue struct {
	Mode      sink.Mode
	Producers Producers
	Backend   Backend

	newSink sinkFunc
}

// task is one deferred write.
type task func() error

// Name implements Strategy.
func (s Queue) Name() string {
	name := "queue-" + s.Producers.String()
	if s.Backend != Unbounded {
		name += "-" + s.Backend.String()
	}
	return name
}

// Fill implements Strategy. Queue operations do not take a context, so ctx
// is not consulted.
func (s Queue) Fill(_ context.Context, workers int) (*sink.Buffer, error) {
	buf, err := prepare(s.Mode, s.newSink, workers)
	if err != nil {
		return nil, err
	}

	tasks, err := s.newQueue(workers)
	if err != nil {
		return nil, err
	}

	switch s.Producers {
	case Inline:
		err = fillInline(tasks, buf, workers)
	case Concurrent:
		err = fillConcurrent(tasks, buf, workers)
	default:
		err = errors.Wrapf(ErrBackend, "producers %d", s.Producers)
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s Queue) newQueue(workers int) (queue.Queue[task], error) {
	switch s.Backend {
	case Unbounded:
		return queue.NewUnbounded[task](workers), nil
	case Channel:
		return queue.NewChannel[task](workers), nil
	case Ring:
		if s.Producers != Inline {
			return nil, errors.Wrapf(ErrBackend, "%s backend needs a single producer, got %s", s.Backend, s.Producers)
		}
		return queue.NewRingBuffer[task](workers), nil
	case Sharded:
		shards, slots := 1, workers
		if s.Producers == Concurrent {
			shards, slots = workers, 1
		}
		q, err := queue.NewSharded[task](max(slots, minShardSlots), shards)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, errors.Wrapf(ErrBackend, "backend %d", s.Backend)
}

// writeTask captures the worker id and the sink for a deferred write.
func writeTask(buf *sink.Buffer, id int) task {
	return func() error {
		return write(buf, id)
	}
}

// consume runs queued tasks until the queue is closed and empty.
func consume(tasks queue.Queue[task]) error {
	return queue.Drain(tasks, func(t task) error {
		return t()
	})
}

func fillInline(tasks queue.Queue[task], buf *sink.Buffer, workers int) error {
	err := worker.Inline(workers, func(id int) error {
		return tasks.Push(writeTask(buf, id))
	})
	tasks.Close()
	if err != nil {
		return err
	}
	return worker.Spawn(1, func(int) error {
		return consume(tasks)
	})
}

func fillConcurrent(tasks queue.Queue[task], buf *sink.Buffer, workers int) error {
	var consumer taskgroup.Group
	consumer.Go(func() error {
		return worker.Inline(1, func(int) error {
			return consume(tasks)
		})
	})

	perr := worker.Spawn(workers, func(id int) error {
		return enqueue(tasks, id, writeTask(buf, id))
	})
	tasks.Close()

	cerr := consumer.Wait()
	if perr != nil {
		return perr
	}
	return cerr
}

// enqueue pushes t, giving sharded queues the producer's own lane.
func enqueue(tasks queue.Queue[task], id int, t task) error {
	if pq, ok := tasks.(queue.ProducerQueue[task]); ok {
		return pq.PushFrom(uint64(id-1), t)
	}
	return tasks.Push(t)
}
