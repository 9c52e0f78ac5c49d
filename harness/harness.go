package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/weiihann/matvecbench/kernel"
	"github.com/weiihann/matvecbench/workload"
)

// RunConfig holds parameters for a single configuration.
type RunConfig struct {
	Tier    int
	Size    int
	Threads int
}

// Runner times one serial and one parallel kernel invocation per
// configuration.
type Runner struct {
	Clock    Clock
	Kernel   kernel.Parallel
	Progress io.Writer
	Logger   *slog.Logger
}

// NewRunner creates a Runner. Progress receives the human-readable
// console lines; pass io.Discard to silence them.
func NewRunner(
	clock Clock,
	parallel kernel.Parallel,
	progress io.Writer,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		Clock:    clock,
		Kernel:   parallel,
		Progress: progress,
		Logger:   logger.With(slog.String("component", "runner")),
	}
}

// Announce prints the header of a problem-size tier.
func (r *Runner) Announce(size int) {
	sum := workload.Square(size).Summary()

	fmt.Fprintf(r.Progress,
		"Matrix-vector product (c[m] = a[m, n] * b[n]; m = %d, n = %d)\n",
		sum.Rows, sum.Cols)
	fmt.Fprintf(r.Progress, "Memory used: %d MiB\n", sum.MemoryMiB())
}

// Run builds fresh inputs for each kernel, times both and returns the
// measurements with the speedup serial/parallel.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	wcfg := workload.Square(cfg.Size)
	if err := wcfg.Validate(); err != nil {
		return nil, fmt.Errorf("run size %d: %w", cfg.Size, err)
	}

	if cfg.Threads < 1 {
		return nil, fmt.Errorf("run size %d: invalid thread count %d",
			cfg.Size, cfg.Threads)
	}

	gen := workload.NewGenerator(wcfg)

	serial, serialSum := r.timeSerial(gen)
	release()
	fmt.Fprintf(r.Progress, "Elapsed time (serial): %.6f sec.\n", serial)

	parallel, granted, parallelSum := r.timeParallel(gen, cfg.Threads)
	release()
	fmt.Fprintf(r.Progress, "Elapsed time (parallel): %.6f sec.\n", parallel)

	if granted != cfg.Threads {
		r.Logger.WarnContext(ctx, "thread request not fully granted",
			slog.Int("requested", cfg.Threads),
			slog.Int("granted", granted),
		)
	}

	result := &Result{
		Tier:             cfg.Tier,
		Size:             cfg.Size,
		Threads:          cfg.Threads,
		GrantedThreads:   granted,
		SerialSeconds:    serial,
		ParallelSeconds:  parallel,
		Speedup:          serial / parallel,
		MemoryBytes:      wcfg.Summary().MemoryBytes,
		SerialChecksum:   serialSum,
		ParallelChecksum: parallelSum,
	}

	r.Logger.InfoContext(ctx, "configuration finished",
		slog.Int("size", cfg.Size),
		slog.Int("threads", granted),
		slog.Float64("serial_sec", serial),
		slog.Float64("parallel_sec", parallel),
		slog.Float64("speedup", result.Speedup),
	)

	return result, nil
}

func (r *Runner) timeSerial(gen *workload.Generator) (float64, string) {
	p := gen.Generate()

	start := r.Clock.Now()
	c := kernel.Serial(p.A, p.B)
	end := r.Clock.Now()

	return elapsed(start, end), checksum(c)
}

func (r *Runner) timeParallel(gen *workload.Generator, threads int) (float64, int, string) {
	p := gen.Generate()

	start := r.Clock.Now()
	c, granted := r.Kernel.Run(p.A, p.B, threads)
	end := r.Clock.Now()

	return elapsed(start, end), granted, checksum(c)
}

// release hands the previous run's buffers back before the next allocation
// so two full-size problems are never live at once.
func release() {
	runtime.GC()
}
