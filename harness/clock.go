package harness

import (
	"encoding/binary"
	"encoding/hex"
	"hash/fnv"
	"math"
	"time"
)

// timerResolution is the smallest elapsed time a measurement reports.
const timerResolution = 1e-6

// Clock reports seconds since an arbitrary, fixed epoch. Readings never
// decrease within a process.
type Clock interface {
	Now() float64
}

// WallClock reads the process monotonic clock.
type WallClock struct {
	epoch time.Time
}

// NewWallClock returns a WallClock whose epoch is the moment of the call.
func NewWallClock() *WallClock {
	return &WallClock{epoch: time.Now()}
}

// Now returns the seconds elapsed since the clock was created.
func (c *WallClock) Now() float64 {
	return time.Since(c.epoch).Seconds()
}

func elapsed(start, end float64) float64 {
	return math.Max(end-start, timerResolution)
}

// checksum fingerprints an output vector by the exact bits of every element.
func checksum(c []float64) string {
	h := fnv.New64a()

	var buf [8]byte
	for _, v := range c {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	return "0x" + hex.EncodeToString(h.Sum(nil))
}
