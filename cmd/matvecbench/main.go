// Package main provides the CLI entry point for matvecbench, a benchmark of
// serial against statically partitioned parallel matrix-vector products.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weiihann/matvecbench/harness"
	"github.com/weiihann/matvecbench/kernel"
	"github.com/weiihann/matvecbench/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("matvecbench failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "matvecbench",
		Short: "Serial vs. parallel matrix-vector product benchmark",
		Long: `Matvecbench times a single-threaded dense matrix-vector product
against a statically partitioned multi-threaded one over a sweep of problem
sizes and thread counts, and writes the speedup of every configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newInfoCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		sizes       []int
		threads     []int
		outDir      string
		threadLimit int
		summary     bool
		outputJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark sweep",
		Long: `Run every problem size with every thread count. Each size tier gets
its own data file (data1.dat, data2.dat, ...) with one "threads   speedup" line
per thread count.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger,
				cmd.OutOrStdout(), cmd.ErrOrStderr(),
				runConfig{
					sizes:       sizes,
					threads:     threads,
					outDir:      outDir,
					threadLimit: threadLimit,
					summary:     summary,
					outputJSON:  outputJSON,
				})
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&sizes, "sizes", harness.DefaultSizes(),
		"Square problem sizes, one data file each")
	flags.IntSliceVar(&threads, "threads", harness.DefaultThreads(),
		"Thread counts to run for every size")
	flags.StringVar(&outDir, "out-dir", ".",
		"Directory for the data files")
	flags.IntVar(&threadLimit, "thread-limit", 0,
		"Maximum workers granted to the parallel kernel (0 = no limit)")
	flags.BoolVar(&summary, "summary", false,
		"Print a markdown summary table after the sweep")
	flags.BoolVar(&outputJSON, "json", false,
		"Print results as JSON after the sweep")

	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print host CPU information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printHost(cmd.OutOrStdout(), harness.DetectHost())

			return nil
		},
	}
}

type runConfig struct {
	sizes       []int
	threads     []int
	outDir      string
	threadLimit int
	summary     bool
	outputJSON  bool
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out, errOut io.Writer,
	cfg runConfig,
) error {
	sweep := harness.SweepConfig{Sizes: cfg.sizes, Threads: cfg.threads}
	if err := sweep.Validate(); err != nil {
		return err
	}

	if cfg.threadLimit < 0 {
		return fmt.Errorf("invalid thread limit %d", cfg.threadLimit)
	}

	host := harness.DetectHost()

	logger.InfoContext(ctx, "starting benchmark",
		slog.Any("sizes", cfg.sizes),
		slog.Any("threads", cfg.threads),
		slog.String("out_dir", cfg.outDir),
		slog.Int("thread_limit", cfg.threadLimit),
		slog.Int("num_cpu", host.NumCPU),
		slog.Int("gomaxprocs", host.GOMAXPROCS),
		slog.String("features", strings.Join(host.Features, ",")),
	)

	// Step 1: Open the data files before any kernel runs.
	ratios, err := report.NewRatioWriter(cfg.outDir, len(cfg.sizes))
	if err != nil {
		return fmt.Errorf("open data files: %w", err)
	}

	// Step 2: Run the sweep. Progress moves to stderr when stdout
	// carries JSON.
	progress := out
	if cfg.outputJSON {
		progress = errOut
	}

	runner := harness.NewRunner(
		harness.NewWallClock(),
		kernel.Parallel{ThreadLimit: cfg.threadLimit},
		progress,
		logger,
	)

	var collected report.Collector

	sweepErr := harness.Sweep(ctx, logger, runner, sweep, ratios, &collected)

	if err := ratios.Close(); err != nil && sweepErr == nil {
		sweepErr = fmt.Errorf("close data files: %w", err)
	}

	if sweepErr != nil {
		return sweepErr
	}

	// Step 3: Generate report.
	if cfg.outputJSON {
		if err := report.GenerateJSON(out, host, collected.Results()); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else if cfg.summary {
		if err := report.Generate(out, collected.Results()); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}

func printHost(w io.Writer, host harness.Host) {
	fmt.Fprintf(w, "GOOS: %s\n", host.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", host.GOARCH)
	fmt.Fprintf(w, "NumCPU: %d\n", host.NumCPU)
	fmt.Fprintf(w, "GOMAXPROCS: %d\n", host.GOMAXPROCS)

	features := "none detected"
	if len(host.Features) > 0 {
		features = strings.Join(host.Features, " ")
	}

	fmt.Fprintf(w, "Features: %s\n", features)
}
