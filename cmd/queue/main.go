// Command queue compares the queue backends the Queue strategy can drain
// write tasks from.
//
// Single-producer mode pushes and pops one task per iteration on the
// calling goroutine. With -producers > 1, that many goroutines push
// concurrently while one consumer drains; the SPSC ring is skipped there.
//
// Usage:
//
//	go run ./cmd/queue -n 10000000 -size 1024
//	go run ./cmd/queue -n 1000000 -producers 8
package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/randomizedcoder/syncbench/internal/logger"
	"github.com/randomizedcoder/syncbench/internal/queue"
	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/worker"
)

// writeTask is what the Queue strategy enqueues: one payload write.
type writeTask func() error

type backend struct {
	name string
	spsc bool
	make func(size, producers int) (queue.Queue[writeTask], error)
}

var backends = []backend{
	{"unbounded", false, func(size, _ int) (queue.Queue[writeTask], error) {
		return queue.NewUnbounded[writeTask](size), nil
	}},
	{"channel", false, func(size, _ int) (queue.Queue[writeTask], error) {
		return queue.NewChannel[writeTask](size), nil
	}},
	{"ring", true, func(size, _ int) (queue.Queue[writeTask], error) {
		return queue.NewRingBuffer[writeTask](size), nil
	}},
	{"sharded", false, func(size, producers int) (queue.Queue[writeTask], error) {
		return queue.NewSharded[writeTask](size, producers)
	}},
}

func main() {
	iterations := pflag.IntP("iterations", "n", 10_000_000, "number of tasks")
	size := pflag.Int("size", 1024, "queue size (per shard for sharded)")
	producers := pflag.Int("producers", 1, "concurrent producer goroutines")
	debug := pflag.Bool("debug", false, "development logging")
	pflag.Parse()

	log, err := logger.New(*debug)
	if err != nil {
		zap.NewExample().Fatal("create logger", zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck

	if *iterations < 1 || *size < 1 || *producers < 1 {
		log.Fatal("invalid flags",
			zap.Int("iterations", *iterations),
			zap.Int("size", *size),
			zap.Int("producers", *producers),
		)
	}

	fmt.Printf("Benchmarking queue backends (%s tasks, size=%d, producers=%d)\n",
		humanize.Comma(int64(*iterations)), *size, *producers)
	fmt.Println("─────────────────────────────────────────────────")

	type result struct {
		name  string
		dur   time.Duration
		tasks int
	}
	var results []result

	for _, b := range backends {
		if b.spsc && *producers > 1 {
			log.Debug("skipping single-producer backend", zap.String("backend", b.name))
			continue
		}
		q, err := b.make(*size, *producers)
		if err != nil {
			log.Fatal("create queue", zap.String("backend", b.name), zap.Error(err))
		}

		var dur time.Duration
		var tasks int
		if *producers == 1 {
			dur, tasks, err = pingPong(q, *iterations, *size)
		} else {
			dur, tasks, err = fanIn(q, *iterations, *size, *producers)
		}
		if err != nil {
			log.Fatal("run", zap.String("backend", b.name), zap.Error(err))
		}
		results = append(results, result{b.name, dur, tasks})
	}

	fmt.Printf("\nResults (push + pop + write per task):\n")
	for _, r := range results {
		perOp := float64(r.dur.Nanoseconds()) / float64(r.tasks)
		fmt.Printf("  %-10s %v (%.2f ns/op, %s ops/sec)\n",
			r.name+":", r.dur, perOp, humanize.SI(1e9/perOp, ""))
	}
}

// pingPong pushes and immediately pops each task on one goroutine and
// returns the number of tasks run. The sink is replaced every size tasks to
// keep memory flat.
func pingPong(q queue.Queue[writeTask], iterations, size int) (time.Duration, int, error) {
	buf := sink.New(sink.Presized, size)
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if i%size == 0 {
			buf = sink.New(sink.Presized, size)
		}
		b := buf
		if err := q.Push(func() error { return b.WritePayload() }); err != nil {
			return 0, i, err
		}
		t, _ := q.Pop()
		if err := t(); err != nil {
			return 0, i, err
		}
	}
	q.Close()
	return time.Since(start), iterations, nil
}

// share returns how many of iterations tasks producer id (1-based) pushes.
// The first iterations%producers producers take one extra.
func share(iterations, producers, id int) int {
	n := iterations / producers
	if id <= iterations%producers {
		n++
	}
	return n
}

// fanIn splits the tasks across producer goroutines while one consumer
// drains the queue into a growable sink, reset every size tasks. It returns
// the number of tasks the consumer ran.
func fanIn(q queue.Queue[writeTask], iterations, size, producers int) (time.Duration, int, error) {
	buf := sink.New(sink.Growable, size)

	start := time.Now()
	var ran int
	consumed := make(chan error, 1)
	go func() {
		consumed <- queue.Drain(q, func(t writeTask) error {
			if ran++; ran%size == 0 {
				buf = sink.New(sink.Growable, size)
			}
			return t()
		})
	}()

	perr := worker.Spawn(producers, func(id int) error {
		pq, sharded := q.(queue.ProducerQueue[writeTask])
		for i := 0; i < share(iterations, producers, id); i++ {
			t := writeTask(func() error { return buf.WritePayload() })
			var err error
			if sharded {
				err = pq.PushFrom(uint64(id-1), t)
			} else {
				err = q.Push(t)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	q.Close()
	cerr := <-consumed
	dur := time.Since(start)
	if perr != nil {
		return 0, ran, perr
	}
	return dur, ran, cerr
}
