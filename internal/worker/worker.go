// Package worker starts the goroutines of one benchmark run and waits for
// them.
package worker

import (
	"github.com/creachadair/taskgroup"
	"github.com/pkg/errors"
)

// ErrPanic wraps the value recovered from a panicking worker.
var ErrPanic = errors.New("worker: panic")

// Func is the body of one worker. id runs from 1 to n.
type Func func(id int) error

// Spawn runs fn(id) for every id in 1..n, each in its own goroutine, and
// waits for all of them. It returns the first error any worker reported.
//
// A panic in fn is recovered and reported as an error wrapping ErrPanic, so
// deferred releases inside fn still run and the process survives.
func Spawn(n int, fn Func) error {
	var g taskgroup.Group
	for id := 1; id <= n; id++ {
		g.Go(task(id, fn))
	}
	return g.Wait()
}

// SpawnLimited is Spawn with at most limit workers running at once. The
// taskgroup throttle admits each worker before its goroutine starts, so
// with a limit of 1 the calling goroutine waits for every previous worker
// before starting the next.
func SpawnLimited(n, limit int, fn Func) error {
	var g taskgroup.Group
	start := taskgroup.NewThrottle(limit).Limit(&g)
	for id := 1; id <= n; id++ {
		start.Go(task(id, fn))
	}
	return g.Wait()
}

// Inline runs fn(id) for every id in 1..n on the calling goroutine, stopping
// at the first error.
func Inline(n int, fn Func) error {
	for id := 1; id <= n; id++ {
		if err := task(id, fn)(); err != nil {
			return err
		}
	}
	return nil
}

func task(id int, fn Func) taskgroup.Task {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Wrapf(ErrPanic, "worker %d: %v", id, r)
			}
		}()
		return fn(id)
	}
}
