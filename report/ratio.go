package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/weiihann/matvecbench/harness"
)

// RatioFileName returns the data file name of a zero-based size tier:
// data1.dat for tier 0, data2.dat for tier 1 and so on.
func RatioFileName(tier int) string {
	return fmt.Sprintf("data%d.dat", tier+1)
}

// FormatRatio renders one data file line: the thread count, three spaces
// and the speedup with six decimals.
func FormatRatio(threads int, speedup float64) string {
	return fmt.Sprintf("%d   %.6f\n", threads, speedup)
}

// RatioWriter appends one line per result to the data file of the result's
// size tier. All files are created up front so an unwritable output
// directory fails before any kernel runs.
type RatioWriter struct {
	files []*os.File
}

// NewRatioWriter creates (truncating) one data file per tier in dir.
func NewRatioWriter(dir string, tiers int) (*RatioWriter, error) {
	w := &RatioWriter{files: make([]*os.File, 0, tiers)}

	for tier := range tiers {
		path := filepath.Join(dir, RatioFileName(tier))

		f, err := os.Create(path)
		if err != nil {
			w.Close()

			return nil, fmt.Errorf("create %s: %w", path, err)
		}

		w.files = append(w.files, f)
	}

	return w, nil
}

// Write appends the speedup line of r to its tier's file.
func (w *RatioWriter) Write(r harness.Result) error {
	if r.Tier < 0 || r.Tier >= len(w.files) {
		return fmt.Errorf("no data file for tier %d", r.Tier)
	}

	return writeRatio(w.files[r.Tier], r)
}

// Close closes every data file and returns the first error.
func (w *RatioWriter) Close() error {
	var first error

	for _, f := range w.files {
		if err := f.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s: %w", f.Name(), err)
		}
	}

	w.files = nil

	return first
}

func writeRatio(out io.Writer, r harness.Result) error {
	if _, err := io.WriteString(out, FormatRatio(r.Threads, r.Speedup)); err != nil {
		return fmt.Errorf("write ratio for %d threads: %w", r.Threads, err)
	}

	return nil
}
