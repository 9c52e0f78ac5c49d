// Package partition splits a row space into contiguous per-worker ranges.
package partition

import (
	"errors"
	"fmt"
)

// ErrThreadCount is returned when a partition is requested for fewer than
// one worker.
var ErrThreadCount = errors.New("thread count must be at least 1")

// Range is an inclusive span of rows [Lower, Upper] owned by one worker.
// A range with Upper < Lower is empty.
type Range struct {
	Lower int
	Upper int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	return max(0, r.Upper-r.Lower+1)
}

// Empty reports whether the range holds no rows.
func (r Range) Empty() bool {
	return r.Upper < r.Lower
}

// Partitioner assigns rows to workers before execution begins.
type Partitioner interface {
	Split(rows, threads int) ([]Range, error)
}

// Static gives every worker but the last floor(rows/threads) rows and hands
// the remainder to the last worker. When threads exceeds rows the early
// ranges are empty and the last one covers every row.
type Static struct{}

// Split returns threads ranges indexed by worker id.
func (Static) Split(rows, threads int) ([]Range, error) {
	if threads < 1 {
		return nil, fmt.Errorf("split %d rows over %d threads: %w",
			rows, threads, ErrThreadCount)
	}

	if rows < 0 {
		return nil, fmt.Errorf("split %d rows: negative row count", rows)
	}

	perThread := rows / threads
	ranges := make([]Range, threads)

	for k := range threads {
		lower := k * perThread
		upper := lower + perThread - 1

		if k == threads-1 {
			upper = rows - 1
		}

		ranges[k] = Range{Lower: lower, Upper: upper}
	}

	return ranges, nil
}
