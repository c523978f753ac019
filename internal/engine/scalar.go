package engine

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-lcg48/internal/stream"
)

var ErrNotReady = errors.New("engine used before Init")

// Generator is the per-stream output contract shared by every engine.
type Generator interface {
	NextInt() int32
	NextFloat() float32
	NextDouble() float64
}

// Scalar advances one 48-bit state. The zero value is uninitialized; Init makes it ready.
// A Scalar is owned by one goroutine: it performs no locking.
type Scalar struct {
	params stream.Params
	mult   uint64
	prime  uint64
	state  uint64
	ready  bool
}

var _ Generator = (*Scalar)(nil)

// NewScalar returns a ready engine for p.
func NewScalar(p stream.Params) *Scalar {
	s := &Scalar{}
	s.Init(p)
	return s
}

// Init seeds the state from p and discards the stream's run-up.
func (s *Scalar) Init(p stream.Params) {
	s.params = p
	s.mult = p.Multiplier
	s.prime = uint64(p.Prime)
	s.state = jump(p.Mixed(), p.RunUpSteps(), s.mult, s.prime)
	s.ready = true
}

func (s *Scalar) Ready() bool { return s.ready }

func (s *Scalar) NextInt() int32 {
	return ToInt(s.next())
}

func (s *Scalar) NextFloat() float32 {
	return ToFloat(s.next())
}

func (s *Scalar) NextDouble() float64 {
	return ToDouble(s.next())
}

// Next advances and returns the raw 48-bit state.
func (s *Scalar) Next() uint64 {
	return s.next()
}

// Jump skips n outputs.
func (s *Scalar) Jump(n uint64) {
	s.mustBeReady()
	s.state = jump(s.state, n, s.mult, s.prime)
}

// State returns the current 48-bit state without advancing.
func (s *Scalar) State() uint64 { return s.state }

func (s *Scalar) Params() stream.Params { return s.params }

func (s *Scalar) String() string {
	if !s.ready {
		return "lcg48{uninitialized}"
	}
	return fmt.Sprintf("%s state=%#012x", s.params, s.state)
}

/**
 * Private API.
 */

func (s *Scalar) next() uint64 {
	s.mustBeReady()
	s.state = Step(s.state, s.mult, s.prime)
	return s.state
}

func (s *Scalar) mustBeReady() {
	if !s.ready {
		panic(ErrNotReady)
	}
}
