package harness

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultSizes returns the problem sizes of the standard sweep.
func DefaultSizes() []int {
	return []int{15000, 20000, 25000}
}

// DefaultThreads returns the thread counts of the standard sweep.
func DefaultThreads() []int {
	return []int{2, 4, 6, 8}
}

// SweepConfig lists the configurations of a sweep. Every size is run with
// every thread count.
type SweepConfig struct {
	Sizes   []int
	Threads []int
}

// Validate rejects sweeps that would run nothing or run an invalid
// configuration.
func (c SweepConfig) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("at least one problem size is required")
	}

	if len(c.Threads) == 0 {
		return fmt.Errorf("at least one thread count is required")
	}

	for _, s := range c.Sizes {
		if s < 1 {
			return fmt.Errorf("invalid problem size %d", s)
		}
	}

	for _, t := range c.Threads {
		if t < 1 {
			return fmt.Errorf("invalid thread count %d", t)
		}
	}

	return nil
}

// Configurations returns the sweep in execution order: sizes outer,
// thread counts inner.
func (c SweepConfig) Configurations() []RunConfig {
	runs := make([]RunConfig, 0, len(c.Sizes)*len(c.Threads))

	for tier, size := range c.Sizes {
		for _, threads := range c.Threads {
			runs = append(runs, RunConfig{
				Tier:    tier,
				Size:    size,
				Threads: threads,
			})
		}
	}

	return runs
}

// Sweep runs every configuration sequentially and hands each Result to
// every sink before the next configuration starts. It stops at the first
// sink error. Cancelling ctx stops the sweep between configurations; a
// running kernel is never interrupted.
func Sweep(
	ctx context.Context,
	logger *slog.Logger,
	runner *Runner,
	cfg SweepConfig,
	sinks ...Sink,
) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	logger.InfoContext(ctx, "starting sweep",
		slog.Any("sizes", cfg.Sizes),
		slog.Any("threads", cfg.Threads),
	)

	tier := -1

	for _, run := range cfg.Configurations() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sweep interrupted before size %d threads %d: %w",
				run.Size, run.Threads, err)
		}

		if run.Tier != tier {
			tier = run.Tier
			runner.Announce(run.Size)
		}

		result, err := runner.Run(ctx, run)
		if err != nil {
			return fmt.Errorf("run size %d threads %d: %w",
				run.Size, run.Threads, err)
		}

		for _, sink := range sinks {
			if err := sink.Write(*result); err != nil {
				return fmt.Errorf("write result size %d threads %d: %w",
					run.Size, run.Threads, err)
			}
		}
	}

	logger.InfoContext(ctx, "sweep complete")

	return nil
}
