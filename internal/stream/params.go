package stream

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-lcg48/internal/prime"
	"log/slog"
)

const (
	// MaxStreams bounds stream positions; run-up and prime selection are defined below it.
	MaxStreams = 1 << 19
	// RunUp is the number of discarded steps per unit of stream position.
	RunUp = 29
	// InitSeed is mixed into every caller seed.
	InitSeed uint64 = 0x2bc68cfe166d
	// LSB48 keeps state within 48 bits.
	LSB48 uint64 = 0xFFFFFFFFFFFF
	// SeedMask clears the top bit of a caller seed.
	SeedMask = 0x7fffffff
)

// Multipliers is the fixed table of 48-bit multipliers.
var Multipliers = [...]uint64{
	0x2875a2e7b175,
	0x5deece66d,
	0x3eac44605265,
	0x275b38eb4bbd,
	0x1ee1429cc9f5,
	0x739a9cb08605,
	0x3228d7cc25f5,
}

var (
	ErrStreamOutOfRange = errors.New("stream position out of range")
	ErrTooManyStreams   = errors.New("too many streams")
	ErrNoPrime          = errors.New("prime supplier returned no prime")
)

// Params identifies one stream. Values are immutable once built.
type Params struct {
	Seed       uint32 // 31 bits
	MultIndex  int
	Multiplier uint64
	Position   uint32
	Total      uint32
	Prime      uint32
}

// Mixed returns the 48-bit state before run-up.
func (p Params) Mixed() uint64 {
	s := (InitSeed ^ uint64(p.Seed)<<16) & LSB48
	if p.Prime == 0 {
		s |= 1
	}
	return s
}

// RunUpSteps returns the number of steps discarded at initialization.
func (p Params) RunUpSteps() uint64 {
	return RunUp * uint64(p.Position)
}

func (p Params) String() string {
	return fmt.Sprintf("lcg48{seed=%d mult=%d(%#x) stream=%d/%d prime=%d}",
		p.Seed, p.MultIndex, p.Multiplier, p.Position, p.Total, p.Prime)
}

// Maker builds Params against a prime supplier.
type Maker struct {
	primes prime.Supplier
	logger *slog.Logger
}

func NewMaker(primes prime.Supplier, logger *slog.Logger) *Maker {
	if logger == nil {
		logger = slog.Default()
	}
	if primes == nil {
		primes = prime.Default()
	}
	return &Maker{primes: primes, logger: logger}
}

var defaultMaker = NewMaker(nil, nil)

// Make builds Params with the default prime table.
func Make(seed, multIndex, position, total int32) (Params, error) {
	return defaultMaker.Make(seed, multIndex, position, total)
}

// Make validates the stream identity and assembles its parameters.
// A multiplier index outside the table is coerced to 0; a bad position or total is an error,
// since silently picking another stream would break independence.
func (m *Maker) Make(seed, multIndex, position, total int32) (Params, error) {
	if total <= 0 || position < 0 || position >= total {
		return Params{}, fmt.Errorf("%w: stream %d of %d", ErrStreamOutOfRange, position, total)
	}
	if position >= MaxStreams {
		return Params{}, fmt.Errorf("%w: stream %d, maximum is %d", ErrTooManyStreams, position, MaxStreams)
	}
	if multIndex < 0 || int(multIndex) >= len(Multipliers) {
		m.logger.Warn("multiplier index out of range, using 0",
			"multiplier_index", multIndex, "max", len(Multipliers)-1)
		multIndex = 0
	}

	primes := m.primes.Primes(1, int(position))
	if len(primes) != 1 {
		return Params{}, fmt.Errorf("%w: stream %d", ErrNoPrime, position)
	}

	return Params{
		Seed:       uint32(seed) & SeedMask,
		MultIndex:  int(multIndex),
		Multiplier: Multipliers[multIndex],
		Position:   uint32(position),
		Total:      uint32(total),
		Prime:      primes[0],
	}, nil
}

// Family builds every stream of one spawn: positions 0..total-1.
func (m *Maker) Family(seed, multIndex, total int32) ([]Params, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total %d", ErrStreamOutOfRange, total)
	}
	if total > MaxStreams {
		return nil, fmt.Errorf("%w: %d requested, maximum is %d", ErrTooManyStreams, total, MaxStreams)
	}
	if multIndex < 0 || int(multIndex) >= len(Multipliers) {
		m.logger.Warn("multiplier index out of range, using 0",
			"multiplier_index", multIndex, "max", len(Multipliers)-1)
		multIndex = 0
	}
	out := make([]Params, total)
	for i := range out {
		p, err := m.Make(seed, multIndex, int32(i), total)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Family builds every stream of one spawn with the default prime table.
func Family(seed, multIndex, total int32) ([]Params, error) {
	return defaultMaker.Family(seed, multIndex, total)
}
