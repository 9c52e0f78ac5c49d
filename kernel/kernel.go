// Package kernel implements the dense matrix-vector product c = a * b,
// once on the calling goroutine and once split over a fixed team of
// workers.
package kernel

import (
	"github.com/weiihann/matvecbench/partition"
	"github.com/weiihann/matvecbench/workload"
)

// Serial computes c = a * b on the calling goroutine and returns a freshly
// allocated c of length a.Rows.
//
// Panics if len(b) < a.Cols or the matrix storage is shorter than
// a.Rows * a.Cols.
func Serial(a *workload.Matrix, b []float64) []float64 {
	checkShape(a, b)

	c := make([]float64, a.Rows)
	rows(a, b, c, partition.Range{Lower: 0, Upper: a.Rows - 1})

	return c
}

// rows computes c[i] for every row i in r. Both kernels go through here so
// the accumulation order of a row never depends on which kernel ran it.
func rows(a *workload.Matrix, b, c []float64, r partition.Range) {
	for i := r.Lower; i <= r.Upper; i++ {
		row := a.Row(i)

		c[i] = 0.0
		for j, v := range row {
			c[i] += v * b[j]
		}
	}
}

func checkShape(a *workload.Matrix, b []float64) {
	if len(a.Data) < a.Rows*a.Cols {
		panic("matrix slice too small")
	}
	if len(b) < a.Cols {
		panic("vector slice too small")
	}
}
