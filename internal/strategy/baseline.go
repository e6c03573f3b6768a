package strategy

import (
	"context"

	"github.com/randomizedcoder/syncbench/internal/sink"
)

// Baseline performs every write on the calling goroutine. It is the
// zero-coordination reference the other strategies are measured against.
type Baseline struct {
	Mode sink.Mode

	newSink sinkFunc
}

// Name implements Strategy.
func (Baseline) Name() string { return "baseline" }

// Fill implements Strategy.
func (s Baseline) Fill(_ context.Context, workers int) (*sink.Buffer, error) {
	buf, err := prepare(s.Mode, s.newSink, workers)
	if err != nil {
		return nil, err
	}
	for id := 1; id <= workers; id++ {
		if err := write(buf, id); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
