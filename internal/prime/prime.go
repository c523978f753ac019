package prime

import (
	"log/slog"
	"sync"
)

const (
	// Min is the exclusive lower bound of the enumeration.
	Min = 3444
	// Max is the exclusive upper bound of the enumeration.
	Max = 11863285
	// MaxOffset is the number of odd primes in (Min, Max).
	MaxOffset = 779157
)

// Supplier returns `need` primes starting at the `offset`-th position of the canonical enumeration.
type Supplier interface {
	Primes(need, offset int) []uint32
}

// Table is a lazily sieved, memoized enumeration of the odd primes in (Min, Max), ascending.
// Results depend only on (need, offset), never on call order, so one Table may be shared
// by any number of goroutines.
type Table struct {
	logger *slog.Logger
	once   sync.Once
	primes []uint32
}

func New(logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{logger: logger}
}

var defaultTable = New(nil)

// Default returns the process-wide table.
func Default() *Table { return defaultTable }

// Primes returns exactly need primes beginning at offset. Bad arguments yield an empty result;
// an offset past MaxOffset wraps with a warning since streams may then share an addend.
func (t *Table) Primes(need, offset int) []uint32 {
	if need <= 0 {
		t.logger.Warn("prime table: number of primes needed is not positive", "need", need)
		return nil
	}
	if offset < 0 {
		t.logger.Warn("prime table: negative offset", "offset", offset)
		return nil
	}
	if offset+need > MaxOffset {
		t.logger.Warn("prime table: offset exceeds capacity, wrapping; streams are no longer guaranteed independent",
			"offset", offset, "need", need, "capacity", MaxOffset)
	}

	t.once.Do(t.sieve)

	out := make([]uint32, need)
	for i := range out {
		out[i] = t.primes[(offset+i)%MaxOffset]
	}
	return out
}

// Nth returns the prime at position n (wrapped modulo MaxOffset).
func (t *Table) Nth(n int) uint32 {
	if n < 0 {
		return 0
	}
	t.once.Do(t.sieve)
	return t.primes[n%MaxOffset]
}

// Len reports the table capacity after sieving.
func (t *Table) Len() int {
	t.once.Do(t.sieve)
	return len(t.primes)
}

/**
 * Private API.
 */

// sieve marks composites among odd numbers only: bit i stands for 2i+1.
func (t *Table) sieve() {
	const n = (Max + 1) / 2
	composite := make([]uint64, n/64+1)
	for i := 1; ; i++ {
		p := 2*i + 1
		if p*p >= Max {
			break
		}
		if composite[i>>6]&(1<<(i&63)) != 0 {
			continue
		}
		for j := p * p / 2; j < n; j += p {
			composite[j>>6] |= 1 << (j & 63)
		}
	}

	primes := make([]uint32, 0, MaxOffset)
	for i := Min / 2; i < n; i++ {
		p := 2*i + 1
		if p <= Min || p >= Max {
			continue
		}
		if composite[i>>6]&(1<<(i&63)) == 0 {
			primes = append(primes, uint32(p))
		}
	}
	t.primes = primes
}
