// Package harness drives a full sweep of strategies, sink modes and worker
// counts outside of `go test -bench`, recording per-iteration latency and
// allocation cost for each case.
package harness

import (
	"context"
	"runtime"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/randomizedcoder/syncbench/internal/cancel"
	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/strategy"
	"github.com/randomizedcoder/syncbench/internal/tick"
)

// ErrAborted is returned when the sweep's context ends before it finishes.
var ErrAborted = errors.New("harness: sweep aborted")

// Latency histogram bounds. Slower iterations are clamped to maxLatency.
const (
	minLatency = int64(time.Nanosecond)
	maxLatency = int64(10 * time.Second)
	sigFigs    = 3
)

// progressEvery is how many iterations pass between clock reads of the
// progress ticker.
const progressEvery = 16

// Result is the measurement of one Case.
type Result struct {
	Strategy   string
	Mode       sink.Mode
	Workers    int
	Iterations int

	Total time.Duration
	Min   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P99   time.Duration
	Max   time.Duration

	AllocsPerOp uint64
	BytesPerOp  uint64

	// Checksum of the last timed iteration. Concurrent strategies may
	// produce a different value on every run.
	Checksum uint32
}

// Runner executes the sweep described by a Config.
type Runner struct {
	cfg Config
	log *zap.Logger
}

// NewRunner validates cfg and returns a Runner logging to log. A nil log
// discards output.
func NewRunner(cfg Config, log *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}, nil
}

// Run measures every case in order. The first failing case stops the
// sweep; the results gathered so far are returned with the error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	cases, err := r.cfg.Cases()
	if err != nil {
		return nil, err
	}

	abort := cancel.NewContext(ctx)
	defer abort.Cancel()

	progress := tick.NewBatch(tick.New(r.cfg.Progress), progressEvery)
	defer progress.Stop()

	r.log.Info("sweep start",
		zap.Int("cases", len(cases)),
		zap.Int("iterations", r.cfg.Iterations),
		zap.Int("warmup", r.cfg.Warmup),
	)

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		res, err := r.runCase(abort, progress, c)
		if err != nil {
			err = errors.Wrapf(err, "%s/%s/%d", c.Strategy.Name(), c.Mode, c.Workers)
			r.log.Error("case failed", zap.Error(err))
			return results, err
		}
		r.log.Info("case done", resultFields(res)...)
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runCase(abort *cancel.ContextCanceler, progress tick.Ticker, c Case) (Result, error) {
	ctx := abort.Context()

	for i := 0; i < r.cfg.Warmup; i++ {
		if abort.Done() {
			return Result{}, ErrAborted
		}
		if _, err := strategy.Run(ctx, c.Strategy, c.Workers); err != nil {
			return Result{}, aborted(abort, errors.Wrap(err, "warmup"))
		}
	}

	hist := hdrhistogram.New(minLatency, maxLatency, sigFigs)
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	var sum uint32
	start := time.Now()
	for i := 0; i < r.cfg.Iterations; i++ {
		if abort.Done() {
			return Result{}, ErrAborted
		}

		t0 := time.Now()
		s, err := strategy.Run(ctx, c.Strategy, c.Workers)
		elapsed := int64(time.Since(t0))
		if err != nil {
			return Result{}, aborted(abort, err)
		}
		sum = s

		if err := record(hist, elapsed); err != nil {
			return Result{}, err
		}

		if progress.Tick() {
			r.log.Debug("progress",
				zap.String("strategy", c.Strategy.Name()),
				zap.String("mode", c.Mode.String()),
				zap.Int("workers", c.Workers),
				zap.Int("done", i+1),
				zap.Int("of", r.cfg.Iterations),
			)
		}
	}
	total := time.Since(start)
	runtime.ReadMemStats(&after)

	n := uint64(r.cfg.Iterations)
	return Result{
		Strategy:    c.Strategy.Name(),
		Mode:        c.Mode,
		Workers:     c.Workers,
		Iterations:  r.cfg.Iterations,
		Total:       total,
		Min:         time.Duration(hist.Min()),
		Mean:        time.Duration(hist.Mean()),
		P50:         time.Duration(hist.ValueAtQuantile(50)),
		P99:         time.Duration(hist.ValueAtQuantile(99)),
		Max:         time.Duration(hist.Max()),
		AllocsPerOp: (after.Mallocs - before.Mallocs) / n,
		BytesPerOp:  (after.TotalAlloc - before.TotalAlloc) / n,
		Checksum:    sum,
	}, nil
}

// aborted reports ErrAborted for a run that failed because the sweep was
// interrupted, such as a semaphore acquire giving up.
func aborted(abort cancel.Canceler, err error) error {
	if abort.Done() {
		return errors.Wrap(ErrAborted, err.Error())
	}
	return err
}

// record adds one latency sample, clamped to the histogram's range.
func record(hist *hdrhistogram.Histogram, ns int64) error {
	if err := hist.RecordValue(clamp(ns, minLatency, maxLatency)); err != nil {
		return errors.Wrapf(err, "record latency %dns", ns)
	}
	return nil
}

func clamp(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}

func resultFields(r Result) []zap.Field {
	return []zap.Field{
		zap.String("strategy", r.Strategy),
		zap.String("mode", r.Mode.String()),
		zap.Int("workers", r.Workers),
		zap.Duration("mean", r.Mean),
		zap.Duration("p99", r.P99),
		zap.Uint64("allocs_per_op", r.AllocsPerOp),
		zap.Uint64("bytes_per_op", r.BytesPerOp),
		zap.Uint32("checksum", r.Checksum),
	}
}
