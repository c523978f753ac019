package digest

import (
	"encoding/binary"
	"fmt"
	"github.com/zeebo/xxh3"
	"math"
)

// Ints fingerprints an integer output sequence.
func Ints(xs []int32) uint64 {
	h := xxh3.New()
	var buf [4]byte
	for _, x := range xs {
		binary.LittleEndian.PutUint32(buf[:], uint32(x))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Floats fingerprints a single-precision output sequence by bit pattern.
func Floats(xs []float32) uint64 {
	h := xxh3.New()
	var buf [4]byte
	for _, x := range xs {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(x))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Doubles fingerprints a double-precision output sequence by bit pattern.
func Doubles(xs []float64) uint64 {
	h := xxh3.New()
	var buf [8]byte
	for _, x := range xs {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// FmtRate formats a throughput in outputs per second.
func FmtRate(perSec float64) string {
	const (
		K = 1e3
		M = K * 1e3
		G = M * 1e3
	)

	switch {
	case perSec >= G:
		return fmt.Sprintf("%.2fG/s", perSec/G)
	case perSec >= M:
		return fmt.Sprintf("%.2fM/s", perSec/M)
	case perSec >= K:
		return fmt.Sprintf("%.2fK/s", perSec/K)
	default:
		return fmt.Sprintf("%.0f/s", perSec)
	}
}
