package kernel

import (
	"fmt"
	"testing"

	"github.com/weiihann/matvecbench/workload"
)

func BenchmarkSerial(b *testing.B) {
	for _, size := range []int{256, 1024, 2048} {
		p := workload.NewGenerator(workload.Square(size)).Generate()

		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			b.SetBytes(int64(size*size+2*size) * 8)
			for b.Loop() {
				Serial(p.A, p.B)
			}
		})
	}
}

func BenchmarkParallel(b *testing.B) {
	const size = 2048

	p := workload.NewGenerator(workload.Square(size)).Generate()

	for _, threads := range []int{1, 2, 4, 6, 8} {
		b.Run(fmt.Sprintf("threads=%d", threads), func(b *testing.B) {
			b.SetBytes(int64(size*size+2*size) * 8)
			for b.Loop() {
				Parallel{}.Run(p.A, p.B, threads)
			}
		})
	}
}
