// Package strategy implements the ways of serializing N concurrent writers
// onto one sink.Buffer that the suite compares.
//
// This package offers these implementations of the Strategy interface:
//   - Baseline: the caller writes N times, no goroutines
//   - Lock: N goroutines behind a sync.Mutex
//   - Semaphore: N goroutines behind a one-permit x/sync semaphore.Weighted
//   - Throttle: N goroutines admitted one at a time by taskgroup.Throttle
//   - Queue: N write tasks drained in FIFO order by one consumer goroutine
//
// Every call builds a fresh sink and a fresh exclusion primitive and leaves
// nothing behind. Only mutual exclusion of each write is guaranteed; the
// order in which workers land is not, so checksums from concurrent
// strategies vary from run to run.
package strategy

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/randomizedcoder/syncbench/internal/sink"
)

var (
	// ErrInvalidWorkers is returned for a negative worker count.
	ErrInvalidWorkers = errors.New("strategy: invalid worker count")

	// ErrAcquire is returned when a worker cannot obtain the exclusion
	// primitive.
	ErrAcquire = errors.New("strategy: acquire failed")

	// ErrBackend is returned for a queue configuration that cannot run.
	ErrBackend = errors.New("strategy: unsupported queue configuration")

	// ErrUnknown is returned by New for an unregistered name.
	ErrUnknown = errors.New("strategy: unknown strategy")
)

// Strategy coordinates workers writing the payload into one sink.
type Strategy interface {
	// Name identifies the strategy in reports.
	Name() string

	// Fill runs the given number of workers, each writing the payload
	// once, and returns the resulting sink. ctx bounds acquisition of
	// primitives that accept one. On error the partial sink is discarded
	// and nil is returned.
	Fill(ctx context.Context, workers int) (*sink.Buffer, error)
}

// Run fills a fresh sink with s and returns its checksum.
func Run(ctx context.Context, s Strategy, workers int) (uint32, error) {
	buf, err := s.Fill(ctx, workers)
	if err != nil {
		return 0, err
	}
	return sink.Checksum(buf.Bytes()), nil
}

// RunBaseline runs the sequential baseline on a pre-sized sink.
func RunBaseline(workers int) (uint32, error) {
	return Run(context.Background(), Baseline{Mode: sink.Presized}, workers)
}

// RunLock runs the mutex strategy on a pre-sized sink.
func RunLock(workers int) (uint32, error) {
	return Run(context.Background(), Lock{Mode: sink.Presized}, workers)
}

// RunSemaphore runs the semaphore strategy on a pre-sized sink.
func RunSemaphore(workers int) (uint32, error) {
	return Run(context.Background(), Semaphore{Mode: sink.Presized}, workers)
}

// RunQueue runs the inline-producer queue strategy on a pre-sized sink.
func RunQueue(workers int) (uint32, error) {
	return Run(context.Background(), Queue{Mode: sink.Presized}, workers)
}

// sinkFunc builds the sink for a run; tests swap it to inject failures.
type sinkFunc func(workers int) *sink.Buffer

// prepare validates the worker count and returns the run's sink.
func prepare(mode sink.Mode, newSink sinkFunc, workers int) (*sink.Buffer, error) {
	if workers < 0 {
		return nil, errors.Wrapf(ErrInvalidWorkers, "%d", workers)
	}
	if newSink != nil {
		return newSink(workers), nil
	}
	return sink.New(mode, workers), nil
}

// write appends the payload on behalf of worker id.
func write(buf *sink.Buffer, id int) error {
	if err := buf.WritePayload(); err != nil {
		return errors.Wrapf(err, "worker %d", id)
	}
	return nil
}

// registered lists every named configuration.
func registered(mode sink.Mode) []Strategy {
	return []Strategy{
		Baseline{Mode: mode},
		Lock{Mode: mode},
		Semaphore{Mode: mode},
		Throttle{Mode: mode},
		Queue{Mode: mode, Producers: Inline, Backend: Unbounded},
		Queue{Mode: mode, Producers: Inline, Backend: Channel},
		Queue{Mode: mode, Producers: Inline, Backend: Ring},
		Queue{Mode: mode, Producers: Inline, Backend: Sharded},
		Queue{Mode: mode, Producers: Concurrent, Backend: Unbounded},
		Queue{Mode: mode, Producers: Concurrent, Backend: Channel},
		Queue{Mode: mode, Producers: Concurrent, Backend: Sharded},
	}
}

// All returns every registered strategy writing into sinks of the given mode.
func All(mode sink.Mode) []Strategy {
	return registered(mode)
}

// Names returns the sorted names accepted by New.
func Names() []string {
	var names []string
	for _, s := range registered(sink.Presized) {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}

// New returns the registered strategy with the given name.
func New(name string, mode sink.Mode) (Strategy, error) {
	for _, s := range registered(mode) {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknown, "%q", name)
}
