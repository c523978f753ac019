package engine

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-lcg48/internal/simd"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"slices"
)

var ErrLaneCount = errors.New("parameter count does not match lane count")

// Batch is a vector engine with its register width erased.
// Every dst passed to it must hold at least Lanes() values; lane i of each output belongs to
// Params()[i].
type Batch interface {
	Lanes() int
	Params() []stream.Params
	Next(dst []uint64)
	NextInts(dst []int32)
	NextFloats(dst []float32)
	NextDoubles(dst []float64)
	States(dst []uint64)
	Jump(n uint64)
}

// Vector advances one independent stream per lane in lock-step. Lane i produces exactly the
// sequence of a Scalar initialized with the same parameters.
type Vector[V simd.Lanes] struct {
	params []stream.Params
	state  V
	mult   V
	prime  V
	lsb48  V
	ready  bool
}

var (
	_ Batch = (*Vector[simd.X2])(nil)
	_ Batch = (*Vector[simd.X16])(nil)
)

func NewVector[V simd.Lanes](params []stream.Params) (*Vector[V], error) {
	e := &Vector[V]{}
	if err := e.Init(params); err != nil {
		return nil, err
	}
	return e, nil
}

// NewBatch picks the register shape matching len(params): 2, 4, 8 or 16.
func NewBatch(params []stream.Params) (Batch, error) {
	switch len(params) {
	case 2:
		return newBatch[simd.X2](params)
	case 4:
		return newBatch[simd.X4](params)
	case 8:
		return newBatch[simd.X8](params)
	case 16:
		return newBatch[simd.X16](params)
	default:
		return nil, fmt.Errorf("%w: %d streams, want 2, 4, 8 or 16", ErrLaneCount, len(params))
	}
}

// Init loads per-lane seeds, multipliers and primes, applies the zero-prime correction lane
// by lane and runs every lane through its own run-up.
//
// Lanes step together while any of them still has run-up left, lanes that are done are held
// by a mask. The cost is therefore the largest run-up among the lanes.
func (e *Vector[V]) Init(params []stream.Params) error {
	if len(params) != simd.Width[V]() {
		return fmt.Errorf("%w: %d streams for %d lanes", ErrLaneCount, len(params), simd.Width[V]())
	}

	var seeds, mults, primes, runups [simd.MaxLanes]uint64
	for i, p := range params {
		seeds[i] = uint64(p.Seed)
		mults[i] = p.Multiplier
		primes[i] = uint64(p.Prime)
		runups[i] = p.RunUpSteps()
	}

	e.params = append(e.params[:0], params...)
	e.mult = simd.Load[V](mults[:])
	e.prime = simd.Load[V](primes[:])
	e.lsb48 = simd.Broadcast[V](stream.LSB48)

	var (
		zero = simd.Broadcast[V](0)
		one  = simd.Broadcast[V](1)
	)

	state := simd.Xor(simd.Broadcast[V](stream.InitSeed), simd.ShiftLeft(simd.Load[V](seeds[:]), 16))
	state = simd.And(state, e.lsb48)

	zeroPrime := simd.CmpEq(e.prime, zero)
	state = simd.Or(state, simd.And(zeroPrime, one))

	remaining := simd.Load[V](runups[:])
	for !simd.AllZero(remaining) {
		done := simd.CmpEq(remaining, zero)
		next := simd.MulAddMask(state, e.mult, e.prime, e.lsb48)
		state = simd.Select(done, state, next)
		remaining = simd.Sub(remaining, simd.AndNot(done, one))
	}

	e.state = state
	e.ready = true
	return nil
}

func (e *Vector[V]) Lanes() int { return simd.Width[V]() }

// Params returns a copy of the per-lane parameters.
func (e *Vector[V]) Params() []stream.Params { return slices.Clone(e.params) }

// Next advances every lane and stores the raw 48-bit states.
func (e *Vector[V]) Next(dst []uint64) {
	simd.Store(dst, e.advance())
}

func (e *Vector[V]) NextInts(dst []int32) {
	s := simd.ShiftRight(e.advance(), IntShift)
	_ = dst[len(s)-1]
	for i := 0; i < len(s); i++ {
		dst[i] = int32(s[i])
	}
}

// NextFloats goes through the scalar WidenFloat64 fallback; see simd.WidenFloat64.
func (e *Vector[V]) NextFloats(dst []float32) {
	var wide [simd.MaxLanes]float64
	s := e.advance()
	simd.WidenFloat64(wide[:], s)
	_ = dst[len(s)-1]
	for i := 0; i < len(s); i++ {
		dst[i] = float32(wide[i] * TwoM48)
	}
}

func (e *Vector[V]) NextDoubles(dst []float64) {
	var wide [simd.MaxLanes]float64
	s := e.advance()
	simd.WidenFloat64(wide[:], s)
	_ = dst[len(s)-1]
	for i := 0; i < len(s); i++ {
		dst[i] = wide[i] * TwoM48
	}
}

// States stores the current states without advancing.
func (e *Vector[V]) States(dst []uint64) {
	simd.Store(dst, e.state)
}

// Jump skips n outputs on every lane, lane by lane.
func (e *Vector[V]) Jump(n uint64) {
	e.mustBeReady()
	for i := 0; i < len(e.state); i++ {
		e.state[i] = jump(e.state[i], n, e.mult[i], e.prime[i])
	}
}

/**
 * Private API.
 */

func (e *Vector[V]) advance() V {
	e.mustBeReady()
	e.state = simd.MulAddMask(e.state, e.mult, e.prime, e.lsb48)
	return e.state
}

func (e *Vector[V]) mustBeReady() {
	if !e.ready {
		panic(ErrNotReady)
	}
}

func newBatch[V simd.Lanes](params []stream.Params) (Batch, error) {
	v, err := NewVector[V](params)
	if err != nil {
		return nil, err
	}
	return v, nil
}
