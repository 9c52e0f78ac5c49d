package kernel

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/weiihann/matvecbench/partition"
	"github.com/weiihann/matvecbench/workload"
)

func TestSerialSmall(t *testing.T) {
	// a[i,j] = i+j, b = [0 1 2 3]
	//   row 0: 0*0 + 1*1 + 2*2 + 3*3 = 14
	//   row 1: 1*0 + 2*1 + 3*2 + 4*3 = 20
	//   row 2: 2*0 + 3*1 + 4*2 + 5*3 = 26
	//   row 3: 3*0 + 4*1 + 5*2 + 6*3 = 32
	p := workload.NewGenerator(workload.Square(4)).Generate()

	c := Serial(p.A, p.B)
	require.Equal(t, []float64{14, 20, 26, 32}, c)

	for _, threads := range []int{1, 2, 4, 8} {
		got, granted := Parallel{}.Run(p.A, p.B, threads)
		require.Equal(t, threads, granted)
		require.Equalf(t, c, got, "threads=%d", threads)
	}
}

func TestSerialExplicit(t *testing.T) {
	tests := []struct {
		name string
		a    *workload.Matrix
		b    []float64
		want []float64
	}{
		{
			name: "2x3 matrix",
			a:    &workload.Matrix{Rows: 2, Cols: 3, Data: []float64{1, 2, 3, 4, 5, 6}},
			b:    []float64{1, 0, 1},
			want: []float64{4, 10},
		},
		{
			name: "3x4 matrix",
			a: &workload.Matrix{Rows: 3, Cols: 4, Data: []float64{
				1, 2, 3, 4,
				5, 6, 7, 8,
				9, 0, 1, 2,
			}},
			b:    []float64{1, 2, 3, 4},
			want: []float64{30, 70, 20},
		},
		{
			name: "identity",
			a:    &workload.Matrix{Rows: 3, Cols: 3, Data: []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}},
			b:    []float64{5, 7, 9},
			want: []float64{5, 7, 9},
		},
		{
			name: "single column",
			a:    &workload.Matrix{Rows: 4, Cols: 1, Data: []float64{1, 2, 3, 4}},
			b:    []float64{2},
			want: []float64{2, 4, 6, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Serial(tt.a, tt.b))

			got, _ := Parallel{}.Run(tt.a, tt.b, 3)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	for _, size := range []int{1, 3, 7, 64, 129} {
		p := workload.NewGenerator(workload.Square(size)).Generate()
		want := Serial(p.A, p.B)

		for _, threads := range []int{1, 2, 3, 4, 6, 8, 16, 200} {
			t.Run(fmt.Sprintf("size=%d/threads=%d", size, threads), func(t *testing.T) {
				got, _ := Parallel{}.Run(p.A, p.B, threads)
				require.Len(t, got, size)

				for i := range want {
					require.Equalf(t,
						math.Float64bits(want[i]), math.Float64bits(got[i]),
						"row %d: serial %v, parallel %v", i, want[i], got[i])
				}
			})
		}
	}
}

func TestKernelsMatchGonum(t *testing.T) {
	const size = 97

	p := workload.NewGenerator(workload.Square(size)).Generate()

	a := mat.NewDense(size, size, p.A.Data)
	b := mat.NewVecDense(size, p.B)

	var ref mat.VecDense
	ref.MulVec(a, b)

	serial := Serial(p.A, p.B)
	parallel, _ := Parallel{}.Run(p.A, p.B, 4)

	for i := range size {
		want := ref.AtVec(i)
		require.InEpsilon(t, want, serial[i], 1e-12, "serial row %d", i)
		require.InEpsilon(t, want, parallel[i], 1e-12, "parallel row %d", i)
	}
}

func TestKernelsIdempotent(t *testing.T) {
	p := workload.NewGenerator(workload.Square(50)).Generate()

	require.Equal(t, Serial(p.A, p.B), Serial(p.A, p.B))

	first, _ := Parallel{}.Run(p.A, p.B, 6)
	second, _ := Parallel{}.Run(p.A, p.B, 6)
	require.Equal(t, first, second)
}

func TestKernelsLeaveInputsUntouched(t *testing.T) {
	gen := workload.NewGenerator(workload.Square(20))
	p := gen.Generate()
	pristine := gen.Generate()

	Serial(p.A, p.B)
	Parallel{}.Run(p.A, p.B, 4)

	require.Equal(t, pristine.A.Data, p.A.Data)
	require.Equal(t, pristine.B, p.B)
}

func TestParallelGranted(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		request int
		want    int
	}{
		{name: "no limit", limit: 0, request: 8, want: 8},
		{name: "under limit", limit: 8, request: 4, want: 4},
		{name: "over limit", limit: 3, request: 8, want: 3},
		{name: "zero request", limit: 0, request: 0, want: 1},
		{name: "negative request", limit: 4, request: -2, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Parallel{ThreadLimit: tt.limit}.Granted(tt.request))
		})
	}
}

// recordingPartitioner captures the thread count the kernel partitions by.
type recordingPartitioner struct {
	threads []int
}

func (r *recordingPartitioner) Split(rows, threads int) ([]partition.Range, error) {
	r.threads = append(r.threads, threads)

	return partition.Static{}.Split(rows, threads)
}

func TestParallelPartitionsByGrantedCount(t *testing.T) {
	p := workload.NewGenerator(workload.Square(30)).Generate()
	rec := &recordingPartitioner{}

	got, granted := Parallel{Partitioner: rec, ThreadLimit: 3}.Run(p.A, p.B, 8)

	require.Equal(t, 3, granted)
	require.Equal(t, []int{3}, rec.threads)
	require.Equal(t, Serial(p.A, p.B), got)
}

func TestShapePanics(t *testing.T) {
	a := &workload.Matrix{Rows: 2, Cols: 3, Data: []float64{1, 2, 3, 4, 5, 6}}

	require.PanicsWithValue(t, "vector slice too small", func() {
		Serial(a, []float64{1, 2})
	})
	require.PanicsWithValue(t, "vector slice too small", func() {
		Parallel{}.Run(a, []float64{1}, 2)
	})

	short := &workload.Matrix{Rows: 2, Cols: 3, Data: []float64{1, 2, 3}}
	require.PanicsWithValue(t, "matrix slice too small", func() {
		Serial(short, []float64{1, 2, 3})
	})
}
