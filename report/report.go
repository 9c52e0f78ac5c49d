// Package report formats benchmark results: per-tier speedup data files,
// a markdown summary table and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/weiihann/matvecbench/harness"
)

// Generate writes a markdown summary table for the given results.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	// Header.
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	// Output check.
	mismatched := checkChecksums(results)
	if len(mismatched) == 0 {
		fmt.Fprintln(w, "Products: **all match**")
	} else {
		fmt.Fprintln(w, "Products: **MISMATCH**")

		for _, r := range mismatched {
			fmt.Fprintf(w, "  - m=%d threads=%d: serial %s, parallel %s\n",
				r.Size, r.Threads, r.SerialChecksum, r.ParallelChecksum)
		}
	}

	fmt.Fprintln(w)

	// Table header.
	fmt.Fprintln(w, "| Size | Threads | Memory | Serial | Parallel "+
		"| Speedup | Efficiency |")
	fmt.Fprintln(w, "|------|---------|--------|--------|----------"+
		"|---------|------------|")

	for _, r := range results {
		fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %.2fx | %s |\n",
			r.Size,
			formatThreads(r),
			formatBytes(r.MemoryBytes),
			formatSeconds(r.SerialSeconds),
			formatSeconds(r.ParallelSeconds),
			r.Speedup,
			formatEfficiency(r),
		)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, host harness.Host, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(struct {
		Host    harness.Host     `json:"host"`
		Results []harness.Result `json:"results"`
	}{
		Host:    host,
		Results: results,
	})
}

// Collector is a harness.Sink that keeps every result for the summary.
type Collector struct {
	results []harness.Result
}

// Write appends r.
func (c *Collector) Write(r harness.Result) error {
	c.results = append(c.results, r)

	return nil
}

// Results returns the collected results in arrival order.
func (c *Collector) Results() []harness.Result {
	return c.results
}

func checkChecksums(results []harness.Result) []harness.Result {
	var mismatched []harness.Result

	for _, r := range results {
		if r.SerialChecksum != r.ParallelChecksum {
			mismatched = append(mismatched, r)
		}
	}

	return mismatched
}

func formatThreads(r harness.Result) string {
	if r.GrantedThreads != 0 && r.GrantedThreads != r.Threads {
		return fmt.Sprintf("%d (%d granted)", r.Threads, r.GrantedThreads)
	}

	return fmt.Sprintf("%d", r.Threads)
}

// formatEfficiency reports the speedup per granted worker.
func formatEfficiency(r harness.Result) string {
	workers := r.GrantedThreads
	if workers == 0 {
		workers = r.Threads
	}

	if workers == 0 {
		return "-"
	}

	return fmt.Sprintf("%.0f%%", 100*r.Speedup/float64(workers))
}

func formatSeconds(s float64) string {
	if s < 1 {
		return fmt.Sprintf("%.2fms", s*1000)
	}

	return fmt.Sprintf("%.2fs", s)
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
