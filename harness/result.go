// Package harness times the serial and parallel matrix-vector kernels over
// a sweep of problem sizes and thread counts.
package harness

// Result holds the measurements of one (problem size, thread count)
// configuration.
type Result struct {
	Tier             int     `json:"tier"`
	Size             int     `json:"size"`
	Threads          int     `json:"threads"`
	GrantedThreads   int     `json:"granted_threads"`
	SerialSeconds    float64 `json:"serial_seconds"`
	ParallelSeconds  float64 `json:"parallel_seconds"`
	Speedup          float64 `json:"speedup"`
	MemoryBytes      uint64  `json:"memory_bytes"`
	SerialChecksum   string  `json:"serial_checksum"`
	ParallelChecksum string  `json:"parallel_checksum"`
}

// Sink receives each Result as soon as its configuration finishes.
type Sink interface {
	Write(Result) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Result) error

// Write calls f(r).
func (f SinkFunc) Write(r Result) error {
	return f(r)
}
