package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/Borislavv/go-lcg48/internal/stream"
)

var ErrBadState = errors.New("malformed packed engine state")

var magic = [4]byte{'L', '4', '8', 1}

// packedLen is magic + five u32 parameters + state and multiplier.
const packedLen = 4 + 5*4 + 2*8

// MarshalBinary packs the stream identity and current state so a run can resume elsewhere.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	if !s.ready {
		return nil, ErrNotReady
	}
	buf := make([]byte, 0, packedLen)
	buf = append(buf, magic[:]...)
	buf = binary.BigEndian.AppendUint32(buf, s.params.Seed)
	buf = binary.BigEndian.AppendUint32(buf, uint32(s.params.MultIndex))
	buf = binary.BigEndian.AppendUint32(buf, s.params.Position)
	buf = binary.BigEndian.AppendUint32(buf, s.params.Total)
	buf = binary.BigEndian.AppendUint32(buf, s.params.Prime)
	buf = binary.BigEndian.AppendUint64(buf, s.state)
	buf = binary.BigEndian.AppendUint64(buf, s.mult)
	return buf, nil
}

// UnmarshalBinary restores an engine packed by MarshalBinary without repeating the run-up.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != packedLen {
		return fmt.Errorf("%w: length %d, want %d", ErrBadState, len(data), packedLen)
	}
	if [4]byte(data[:4]) != magic {
		return fmt.Errorf("%w: bad magic %q", ErrBadState, data[:4])
	}
	data = data[4:]

	p := stream.Params{
		Seed:      binary.BigEndian.Uint32(data[0:]),
		MultIndex: int(binary.BigEndian.Uint32(data[4:])),
		Position:  binary.BigEndian.Uint32(data[8:]),
		Total:     binary.BigEndian.Uint32(data[12:]),
		Prime:     binary.BigEndian.Uint32(data[16:]),
	}
	state := binary.BigEndian.Uint64(data[20:])
	mult := binary.BigEndian.Uint64(data[28:])

	switch {
	case p.MultIndex >= len(stream.Multipliers) || stream.Multipliers[p.MultIndex] != mult:
		return fmt.Errorf("%w: multiplier %#x does not match index %d", ErrBadState, mult, p.MultIndex)
	case state&^stream.LSB48 != 0:
		return fmt.Errorf("%w: state %#x exceeds 48 bits", ErrBadState, state)
	case p.Seed&^stream.SeedMask != 0:
		return fmt.Errorf("%w: seed %#x exceeds 31 bits", ErrBadState, p.Seed)
	case p.Total == 0 || p.Position >= p.Total:
		return fmt.Errorf("%w: stream %d of %d", ErrBadState, p.Position, p.Total)
	}
	p.Multiplier = mult

	s.params = p
	s.mult = mult
	s.prime = uint64(p.Prime)
	s.state = state
	s.ready = true
	return nil
}
