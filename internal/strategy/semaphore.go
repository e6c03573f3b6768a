package strategy

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/worker"
)

// Semaphore runs one goroutine per worker; each takes the single permit of
// a weighted semaphore for the duration of its write.
//
// Functionally a mutex, but Acquire goes through the semaphore's waiter
// list, which costs differently.
type Semaphore struct {
	Mode sink.Mode

	newSink sinkFunc
}

// Name implements Strategy.
func (Semaphore) Name() string { return "semaphore" }

// Fill implements Strategy. Workers acquire with ctx; once it is done,
// waiting workers fail with ErrAcquire.
func (s Semaphore) Fill(ctx context.Context, workers int) (*sink.Buffer, error) {
	buf, err := prepare(s.Mode, s.newSink, workers)
	if err != nil {
		return nil, err
	}

	sem := semaphore.NewWeighted(1)
	err = worker.Spawn(workers, func(id int) error {
		return semaphoreWrite(ctx, sem, buf, id)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func semaphoreWrite(ctx context.Context, sem *semaphore.Weighted, buf *sink.Buffer, id int) error {
	if err := sem.Acquire(ctx, 1); err != nil {
		return errors.Wrapf(ErrAcquire, "worker %d: %v", id, err)
	}
	defer sem.Release(1)

	return write(buf, id)
}

// Throttle is the Semaphore strategy built on a buffered-channel counting
// semaphore (taskgroup.Throttle) with one slot. The throttle admits a
// worker before its goroutine starts and frees the slot when it returns,
// so the write itself carries no locking.
type Throttle struct {
	Mode sink.Mode

	newSink sinkFunc
}

// Name implements Strategy.
func (Throttle) Name() string { return "throttle" }

// Fill implements Strategy. Admission blocks on a channel send, so ctx is
// not consulted.
func (s Throttle) Fill(_ context.Context, workers int) (*sink.Buffer, error) {
	buf, err := prepare(s.Mode, s.newSink, workers)
	if err != nil {
		return nil, err
	}

	err = worker.SpawnLimited(workers, 1, func(id int) error {
		return write(buf, id)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}
