package combined_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/randomizedcoder/syncbench/internal/cancel"
	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/strategy"
	"github.com/randomizedcoder/syncbench/internal/tick"
)

// Sink variables
var sinkSum uint32
var sinkBool bool

const benchInterval = time.Hour

// ============================================================================
// Harness loop overhead (abort check + progress tick)
// ============================================================================

// BenchmarkCombined_AbortTick_Context measures the per-iteration bookkeeping
// of the harness with a context-backed abort signal and an unbatched ticker.
func BenchmarkCombined_AbortTick_Context(b *testing.B) {
	abort := cancel.NewContext(context.Background())
	defer abort.Cancel()
	ticker := tick.NewAtomicTicker(benchInterval)
	b.ReportAllocs()
	b.ResetTimer()

	var aborted, ticked bool
	for i := 0; i < b.N; i++ {
		aborted = abort.Done()
		ticked = ticker.Tick()
	}
	sinkBool = aborted || ticked
}

// BenchmarkCombined_AbortTick_Optimized uses the atomic abort flag and a
// batched ticker.
func BenchmarkCombined_AbortTick_Optimized(b *testing.B) {
	abort := cancel.NewAtomic()
	ticker := tick.NewBatch(tick.NewAtomicTicker(benchInterval), 16)
	b.ReportAllocs()
	b.ResetTimer()

	var aborted, ticked bool
	for i := 0; i < b.N; i++ {
		aborted = abort.Done()
		ticked = ticker.Tick()
	}
	sinkBool = aborted || ticked
}

// ============================================================================
// Full harness iteration (abort + tick + strategy run + checksum)
// ============================================================================

// BenchmarkCombined_HarnessLoop runs one harness iteration per b.N for
// every strategy at 10 workers, so the bookkeeping can be compared with
// the run it wraps.
func BenchmarkCombined_HarnessLoop(b *testing.B) {
	const workers = 10

	for _, s := range strategy.All(sink.Presized) {
		s := s
		b.Run(fmt.Sprintf("%s/%d", s.Name(), workers), func(b *testing.B) {
			abort := cancel.NewContext(context.Background())
			defer abort.Cancel()
			ticker := tick.NewBatch(tick.NewAtomicTicker(benchInterval), 16)
			b.ReportAllocs()
			b.ResetTimer()

			var sum uint32
			var ticked bool
			for i := 0; i < b.N; i++ {
				if abort.Done() {
					b.Fatal("aborted")
				}
				var err error
				sum, err = strategy.Run(abort.Context(), s, workers)
				if err != nil {
					b.Fatal(err)
				}
				ticked = ticker.Tick()
			}
			sinkSum = sum
			sinkBool = ticked
		})
	}
}
