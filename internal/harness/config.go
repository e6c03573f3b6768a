package harness

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/randomizedcoder/syncbench/internal/sink"
	"github.com/randomizedcoder/syncbench/internal/strategy"
)

// EnvPrefix prefixes every environment variable Config reads, e.g.
// SYNCBENCH_WORKERS=1,10,100.
const EnvPrefix = "SYNCBENCH"

// ErrConfig is returned by Validate for an unusable configuration.
var ErrConfig = errors.New("harness: invalid config")

// Config selects what a sweep measures.
type Config struct {
	Workers    []int         `envconfig:"WORKERS"    default:"1,10,100"`
	Iterations int           `envconfig:"ITERATIONS" default:"1000"`
	Warmup     int           `envconfig:"WARMUP"     default:"100"`
	Modes      []string      `envconfig:"MODES"      default:"presized,growable"`
	Strategies []string      `envconfig:"STRATEGIES"`
	Progress   time.Duration `envconfig:"PROGRESS"   default:"1s"`
	Debug      bool          `envconfig:"DEBUG"      default:"false"`
}

// LoadConfig reads Config from the environment, falling back to the
// defaults above.
func LoadConfig() (cfg Config, err error) {
	err = envconfig.Process(EnvPrefix, &cfg)
	return
}

// Validate rejects configurations the runner cannot execute.
func (c Config) Validate() error {
	if len(c.Workers) == 0 {
		return errors.Wrap(ErrConfig, "no worker counts")
	}
	for _, n := range c.Workers {
		if n < 0 {
			return errors.Wrapf(ErrConfig, "negative worker count %d", n)
		}
	}
	if c.Iterations < 1 {
		return errors.Wrapf(ErrConfig, "iterations must be positive, got %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return errors.Wrapf(ErrConfig, "negative warmup %d", c.Warmup)
	}
	if len(c.Modes) == 0 {
		return errors.Wrap(ErrConfig, "no sink modes")
	}
	for _, m := range c.Modes {
		if _, err := sink.ParseMode(m); err != nil {
			return errors.Wrap(ErrConfig, err.Error())
		}
	}
	for _, name := range c.Strategies {
		if _, err := strategy.New(name, sink.Presized); err != nil {
			return errors.Wrap(ErrConfig, err.Error())
		}
	}
	return nil
}

// Case is one cell of the sweep.
type Case struct {
	Strategy strategy.Strategy
	Mode     sink.Mode
	Workers  int
}

// Cases expands c into strategy x mode x workers, in that nesting order.
// An empty strategy list selects every registered strategy.
func (c Config) Cases() ([]Case, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	names := c.Strategies
	if len(names) == 0 {
		names = strategy.Names()
	}

	var cases []Case
	for _, name := range names {
		for _, m := range c.Modes {
			mode, err := sink.ParseMode(m)
			if err != nil {
				return nil, err
			}
			s, err := strategy.New(name, mode)
			if err != nil {
				return nil, err
			}
			for _, n := range c.Workers {
				cases = append(cases, Case{Strategy: s, Mode: mode, Workers: n})
			}
		}
	}
	return cases, nil
}
