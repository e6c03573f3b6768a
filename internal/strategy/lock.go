package strategy

import (
	"context"
	"sync"

	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/worker"
)

// Lock runs one goroutine per worker; each holds a shared sync.Mutex for
// the duration of its write.
type Lock struct {
	Mode sink.Mode

	newSink sinkFunc
}

// Name implements Strategy.
func (Lock) Name() string { return "lock" }

// Fill implements Strategy. sync.Mutex cannot be abandoned, so ctx is not
// consulted.
func (s Lock) Fill(_ context.Context, workers int) (*sink.Buffer, error) {
	buf, err := prepare(s.Mode, s.newSink, workers)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	err = worker.Spawn(workers, func(id int) error {
		return lockedWrite(&mu, buf, id)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// lockedWrite writes under mu. The unlock is deferred so a failing or
// panicking write cannot leave the mutex held.
func lockedWrite(mu sync.Locker, buf *sink.Buffer, id int) error {
	mu.Lock()
	defer mu.Unlock()
	return write(buf, id)
}
