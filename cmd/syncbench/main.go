// Command syncbench sweeps every writer-serialization strategy across sink
// modes and worker counts and prints a latency and allocation table.
//
// Defaults come from SYNCBENCH_* environment variables; flags override
// them.
//
// Usage:
//
//	go run ./cmd/syncbench -workers 1,10,100 -n 1000 -strategies lock,semaphore
//	go run ./cmd/syncbench -profile mutex -profile-dir /tmp
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/randomizedcoder/syncbench/internal/harness"
	"github.com/randomizedcoder/syncbench/internal/logger"
	"github.com/randomizedcoder/syncbench/internal/strategy"
)

func main() {
	cfg, err := harness.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	pflag.IntSliceVar(&cfg.Workers, "workers", cfg.Workers, "worker counts to sweep")
	pflag.IntVarP(&cfg.Iterations, "iterations", "n", cfg.Iterations, "timed iterations per case")
	pflag.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "untimed iterations per case")
	pflag.StringSliceVar(&cfg.Modes, "modes", cfg.Modes, "sink modes: presized, growable")
	pflag.StringSliceVar(&cfg.Strategies, "strategies", cfg.Strategies, "strategies to run (default all)")
	pflag.DurationVar(&cfg.Progress, "progress", cfg.Progress, "interval between progress lines at debug level, 0 disables")
	pflag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "development logging")
	prof := pflag.String("profile", "", "profile the sweep: cpu, mem, block or mutex")
	profDir := pflag.String("profile-dir", ".", "directory for profile output")
	list := pflag.Bool("list", false, "print strategy names and exit")
	pflag.Parse()

	if *list {
		for _, name := range strategy.Names() {
			fmt.Println(name)
		}
		return
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		zap.NewExample().Fatal("create logger", zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log, *prof, *profDir); err != nil {
		log.Fatal("sweep", zap.Error(err))
	}
}

func run(cfg harness.Config, log *zap.Logger, prof, profDir string) error {
	runner, err := harness.NewRunner(cfg, log)
	if err != nil {
		return err
	}

	if prof != "" {
		mode, err := profileMode(prof)
		if err != nil {
			return err
		}
		defer profile.Start(mode, profile.ProfilePath(profDir), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runner.Run(ctx)
	if werr := harness.WriteReport(os.Stdout, results); werr != nil && err == nil {
		err = errors.Wrap(werr, "write report")
	}
	return err
}

func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "block":
		return profile.BlockProfile, nil
	case "mutex":
		return profile.MutexProfile, nil
	}
	return nil, errors.Errorf("unknown profile %q", name)
}
