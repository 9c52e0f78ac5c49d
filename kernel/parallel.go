package kernel

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/weiihann/matvecbench/partition"
	"github.com/weiihann/matvecbench/workload"
)

// Parallel computes c = a * b with a fork-join team of goroutines. Each
// worker owns one contiguous block of rows and writes only those rows of c;
// a and b are shared read-only.
type Parallel struct {
	// Partitioner splits rows among workers. Nil means partition.Static.
	Partitioner partition.Partitioner

	// ThreadLimit caps the team size. Requests above the limit are granted
	// the limit. Zero means no cap.
	ThreadLimit int
}

// Granted returns the team size actually used for a request of threads.
func (p Parallel) Granted(threads int) int {
	granted := max(1, threads)
	if p.ThreadLimit > 0 && granted > p.ThreadLimit {
		granted = p.ThreadLimit
	}

	return granted
}

// Run computes c = a * b using up to threads workers and returns c together
// with the number of workers that ran. It blocks until every worker has
// finished.
//
// Panics under the same shape conditions as Serial.
func (p Parallel) Run(a *workload.Matrix, b []float64, threads int) ([]float64, int) {
	checkShape(a, b)

	partitioner := p.Partitioner
	if partitioner == nil {
		partitioner = partition.Static{}
	}

	// Partition by the granted count so no row is left without an owner.
	granted := p.Granted(threads)

	ranges, err := partitioner.Split(a.Rows, granted)
	if err != nil {
		panic(fmt.Sprintf("partition %d rows: %v", a.Rows, err))
	}

	c := make([]float64, a.Rows)

	var g errgroup.Group
	for _, r := range ranges {
		if r.Empty() {
			continue
		}

		g.Go(func() error {
			rows(a, b, c, r)

			return nil
		})
	}

	// Workers never fail; Wait is the join.
	_ = g.Wait()

	return c, granted
}
