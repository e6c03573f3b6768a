package tick_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/syncbench/internal/tick"
)

// countingTicker fires on every call and counts them.
type countingTicker struct {
	calls, resets, stops int
}

func (c *countingTicker) Tick() bool { c.calls++; return true }
func (c *countingTicker) Reset()     { c.resets++ }
func (c *countingTicker) Stop()      { c.stops++ }

func TestAtomicTicker(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)
	defer ticker.Stop()

	// Should not tick immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after creation")
	}

	time.Sleep(interval + 20*time.Millisecond)

	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval elapsed")
	}

	// Should not tick again immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after tick")
	}
	if ticker.Ticks() != 1 {
		t.Errorf("expected Ticks() = 1, got %d", ticker.Ticks())
	}
}

func TestAtomicTicker_Reset(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)
	defer ticker.Stop()

	time.Sleep(interval + 20*time.Millisecond)
	ticker.Reset()

	if ticker.Tick() {
		t.Error("expected Tick() = false after Reset()")
	}
}

func TestAtomicTicker_OnePollerPerTick(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)
	time.Sleep(interval + 20*time.Millisecond)

	var fired atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ticker.Tick() {
				fired.Add(1)
			}
		}()
	}
	wg.Wait()

	if fired.Load() != 1 {
		t.Errorf("expected exactly one goroutine to observe the tick, got %d", fired.Load())
	}
}

func TestBatchTicker(t *testing.T) {
	inner := &countingTicker{}
	ticker := tick.NewBatch(inner, 10)

	for i := 1; i <= 9; i++ {
		if ticker.Tick() {
			t.Errorf("expected Tick() = false on call %d (before batch)", i)
		}
	}
	if !ticker.Tick() {
		t.Error("expected the 10th call to reach the inner ticker")
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestBatchTicker_ResetAndStop(t *testing.T) {
	inner := &countingTicker{}
	ticker := tick.NewBatch(inner, 10)

	for i := 0; i < 5; i++ {
		ticker.Tick()
	}
	ticker.Reset()

	// The counter starts over: 9 more calls stay inside the batch.
	for i := 0; i < 9; i++ {
		ticker.Tick()
	}
	if inner.calls != 0 {
		t.Errorf("expected no inner calls after Reset, got %d", inner.calls)
	}
	if inner.resets != 1 {
		t.Errorf("expected Reset to reach the inner ticker")
	}

	ticker.Stop()
	if inner.stops != 1 {
		t.Errorf("expected Stop to reach the inner ticker")
	}
}

func TestBatchTicker_Every(t *testing.T) {
	for _, tc := range []struct{ in, want int }{{100, 100}, {1, 1}, {0, 1}, {-5, 1}} {
		ticker := tick.NewBatch(tick.Never{}, tc.in)
		if ticker.Every() != tc.want {
			t.Errorf("NewBatch(_, %d).Every() = %d, want %d", tc.in, ticker.Every(), tc.want)
		}
	}
}

func TestNew(t *testing.T) {
	if _, ok := tick.New(0).(tick.Never); !ok {
		t.Error("expected New(0) to return Never")
	}
	if _, ok := tick.New(-time.Second).(tick.Never); !ok {
		t.Error("expected a negative interval to return Never")
	}
	if _, ok := tick.New(time.Second).(*tick.AtomicTicker); !ok {
		t.Error("expected New(1s) to return an AtomicTicker")
	}
}

// Test that all implementations satisfy the interface
func TestTickerInterface(t *testing.T) {
	interval := 50 * time.Millisecond

	testCases := []struct {
		name   string
		create func() tick.Ticker
		fires  bool
	}{
		{"AtomicTicker", func() tick.Ticker { return tick.NewAtomicTicker(interval) }, true},
		{"BatchTicker", func() tick.Ticker { return tick.NewBatch(tick.NewAtomicTicker(interval), 1) }, true},
		{"Never", func() tick.Ticker { return tick.Never{} }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := tc.create()
			defer ticker.Stop()

			if ticker.Tick() {
				t.Error("expected Tick() = false immediately")
			}

			time.Sleep(interval + 20*time.Millisecond)

			if got := ticker.Tick(); got != tc.fires {
				t.Errorf("expected Tick() = %v after interval, got %v", tc.fires, got)
			}
		})
	}
}
