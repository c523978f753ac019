package random

import (
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"runtime"
	"sync/atomic"
)

type shard struct {
	// 48-bit LCG state. Updated via atomic CAS.
	state atomic.Uint64
	mult  uint64
	prime uint64
	_     [40]byte // keep neighbouring states on separate cache lines
}

// Source is a lock-free generator shared by many goroutines. Each shard is one stream of an
// LCG48 family; calls are spread over shards round-robin, so the interleaving of values
// depends on scheduling but every value comes from a well-defined stream.
type Source struct {
	shards []shard
	mask   uint32
	rr     atomic.Uint32
}

// New builds a Source over n streams of seed, using multiplier 0.
// If n<=0, it uses GOMAXPROCS*4. Shard count is rounded up to power of two for a cheap mask.
func New(seed int32, n int) (*Source, error) {
	if n <= 0 {
		n = max(runtime.GOMAXPROCS(0)*4, 1)
	}
	p := 1
	for p < n && p < stream.MaxStreams {
		p <<= 1
	}

	family, err := stream.Family(seed, 0, int32(p))
	if err != nil {
		return nil, err
	}

	s := &Source{shards: make([]shard, p), mask: uint32(p - 1)}
	for i, params := range family {
		g := engine.NewScalar(params)
		s.shards[i].state.Store(g.State())
		s.shards[i].mult = params.Multiplier
		s.shards[i].prime = uint64(params.Prime)
	}
	return s, nil
}

// Shards reports the number of streams behind s.
func (s *Source) Shards() int { return len(s.shards) }

// Next advances one shard and returns its new 48-bit state.
func (s *Source) Next() uint64 {
	sh := &s.shards[(s.rr.Add(1)-1)&s.mask]
	for {
		old := sh.state.Load()
		x := engine.Step(old, sh.mult, sh.prime)
		if sh.state.CompareAndSwap(old, x) {
			return x
		}
	}
}

// Float64 returns a uniform in [0,1) using 48 random bits.
func (s *Source) Float64() float64 { return engine.ToDouble(s.Next()) }

// Int31 returns a non-negative 31-bit integer.
func (s *Source) Int31() int32 { return engine.ToInt(s.Next()) }
