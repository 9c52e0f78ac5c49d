// Package workload builds the deterministic inputs of a matrix-vector
// benchmark run: a dense row-major matrix a[i,j] = i + j and a vector
// b[j] = j.
package workload

import "fmt"

const bytesPerElement = 8

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// Row returns row i as a slice sharing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Problem holds the inputs of one kernel invocation.
type Problem struct {
	A *Matrix
	B []float64
}

// Summary describes the footprint of a generated problem.
type Summary struct {
	Rows        int
	Cols        int
	Elements    int
	MemoryBytes uint64
}

// MemoryMiB returns the footprint in whole MiB, rounded down.
func (s Summary) MemoryMiB() uint64 {
	return s.MemoryBytes >> 20
}

// Config controls problem generation. Square problems use Rows == Cols.
type Config struct {
	Rows int
	Cols int
}

// Square returns the Config of a size x size problem.
func Square(size int) Config {
	return Config{Rows: size, Cols: size}
}

// Validate reports whether the dimensions describe a non-empty problem.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("invalid problem dimensions %dx%d", c.Rows, c.Cols)
	}

	return nil
}

// Summary returns the footprint of the matrix, the input vector and the
// output vector for this Config.
func (c Config) Summary() Summary {
	elements := c.Rows*c.Cols + c.Cols + c.Rows

	return Summary{
		Rows:        c.Rows,
		Cols:        c.Cols,
		Elements:    elements,
		MemoryBytes: uint64(elements) * bytesPerElement,
	}
}

// Generator produces fresh, identically filled problems from a Config.
type Generator struct {
	cfg Config
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Config returns the generator's Config.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate allocates and fills a new Problem. Every call returns new
// buffers; nothing is shared between problems.
func (g *Generator) Generate() *Problem {
	a := NewMatrix(g.cfg.Rows, g.cfg.Cols)

	for i := 0; i < a.Rows; i++ {
		row := a.Row(i)
		for j := range row {
			row[j] = float64(i + j)
		}
	}

	b := make([]float64, g.cfg.Cols)
	for j := range b {
		b[j] = float64(j)
	}

	return &Problem{A: a, B: b}
}
