package worker_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/syncbench/internal/worker"
)

func TestSpawn_EveryIDOnce(t *testing.T) {
	defer leaktest.Check(t)()

	for _, n := range []int{0, 1, 10, 100} {
		var mu sync.Mutex
		seen := make(map[int]int)

		err := worker.Spawn(n, func(id int) error {
			mu.Lock()
			seen[id]++
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)

		assert.Len(t, seen, n)
		for id := 1; id <= n; id++ {
			assert.Equal(t, 1, seen[id], "n=%d id=%d", n, id)
		}
	}
}

func TestSpawn_FirstError(t *testing.T) {
	defer leaktest.Check(t)()

	boom := errors.New("boom")
	var ran atomic.Int32

	err := worker.Spawn(10, func(id int) error {
		ran.Add(1)
		if id == 7 {
			return boom
		}
		return nil
	})

	assert.True(t, errors.Is(err, boom), "got %v", err)
	// Failing one worker does not stop the others from being waited for
	assert.Equal(t, int32(10), ran.Load())
}

func TestSpawn_RecoversPanic(t *testing.T) {
	defer leaktest.Check(t)()

	var mu sync.Mutex
	err := worker.Spawn(5, func(id int) error {
		mu.Lock()
		defer mu.Unlock()
		if id == 3 {
			panic("write exploded")
		}
		return nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, worker.ErrPanic), "got %v", err)
	assert.Contains(t, err.Error(), "worker 3")

	// The deferred unlock ran on the panic path
	assert.True(t, mu.TryLock(), "mutex left held after panic")
}

func TestInline_OrderAndStop(t *testing.T) {
	var order []int
	stop := errors.New("stop")

	err := worker.Inline(10, func(id int) error {
		order = append(order, id)
		if id == 4 {
			return stop
		}
		return nil
	})

	assert.True(t, errors.Is(err, stop))
	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestInline_RecoversPanic(t *testing.T) {
	err := worker.Inline(2, func(id int) error {
		panic(id)
	})
	assert.True(t, errors.Is(err, worker.ErrPanic), "got %v", err)
}

func TestSpawnLimited_NeverExceedsLimit(t *testing.T) {
	defer leaktest.Check(t)()

	for _, limit := range []int{1, 3} {
		var running, peak atomic.Int32
		var mu sync.Mutex
		seen := make(map[int]int)

		err := worker.SpawnLimited(50, limit, func(id int) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			mu.Lock()
			seen[id]++
			mu.Unlock()
			running.Add(-1)
			return nil
		})
		require.NoError(t, err)

		assert.Len(t, seen, 50)
		assert.LessOrEqual(t, peak.Load(), int32(limit), "limit=%d", limit)
	}
}

func TestSpawnLimited_PanicFreesSlot(t *testing.T) {
	defer leaktest.Check(t)()

	var ran atomic.Int32
	err := worker.SpawnLimited(5, 1, func(id int) error {
		ran.Add(1)
		if id == 2 {
			panic("write exploded")
		}
		return nil
	})

	assert.True(t, errors.Is(err, worker.ErrPanic), "got %v", err)
	// With one slot, a leaked slot would have blocked workers 3..5 forever.
	assert.Equal(t, int32(5), ran.Load())
}
