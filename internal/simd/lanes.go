// Package simd is a portable model of a vector register holding 64-bit unsigned lanes.
//
// The primitives mirror what SSE2, AVX2 and AVX-512 actually offer for 64-bit lanes: add, and,
// or, xor, shifts, lane compare and the 32x32->64 widening multiply (pmuludq). There is no
// native 64x64 multiply and no unsigned 64-bit to double conversion, so Mul64 and WidenFloat64
// are built on top of the others. Application code is written against these functions only,
// never against a concrete instruction set.
package simd

// Lanes is the set of supported register shapes.
type Lanes interface {
	~[2]uint64 | ~[4]uint64 | ~[8]uint64 | ~[16]uint64
}

type (
	X2  [2]uint64  // 128-bit: SSE2, NEON
	X4  [4]uint64  // 256-bit: AVX2
	X8  [8]uint64  // 512-bit: AVX-512
	X16 [16]uint64 // two 512-bit registers
)

// MaxLanes is the widest supported shape.
const MaxLanes = 16

const (
	lo32 uint64 = 0x00000000FFFFFFFF
	hi32 uint64 = 0xFFFFFFFF00000000
	ones uint64 = 0xFFFFFFFFFFFFFFFF
)

// Width returns the lane count of V.
func Width[V Lanes]() int {
	var v V
	return len(v)
}

func Broadcast[V Lanes](x uint64) (v V) {
	for i := 0; i < len(v); i++ {
		v[i] = x
	}
	return v
}

// Load fills a register from src; src must hold at least Width[V]() values.
func Load[V Lanes](src []uint64) (v V) {
	_ = src[len(v)-1]
	for i := 0; i < len(v); i++ {
		v[i] = src[i]
	}
	return v
}

// Store writes every lane to dst; dst must hold at least Width[V]() values.
func Store[V Lanes](dst []uint64, v V) {
	_ = dst[len(v)-1]
	for i := 0; i < len(v); i++ {
		dst[i] = v[i]
	}
}

func Add[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] + b[i]
	}
	return r
}

func Sub[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] - b[i]
	}
	return r
}

func And[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] & b[i]
	}
	return r
}

// AndNot returns ^a & b, matching the operand order of pandn.
func AndNot[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = ^a[i] & b[i]
	}
	return r
}

func Or[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] | b[i]
	}
	return r
}

func Xor[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] ^ b[i]
	}
	return r
}

func ShiftLeft[V Lanes](a V, n uint) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] << n
	}
	return r
}

func ShiftRight[V Lanes](a V, n uint) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = a[i] >> n
	}
	return r
}

// MulU32 multiplies the low 32 bits of each lane into a full 64-bit product (pmuludq).
func MulU32[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		r[i] = (a[i] & lo32) * (b[i] & lo32)
	}
	return r
}

// CmpEq sets a lane to all ones where a and b are equal and to zero elsewhere.
func CmpEq[V Lanes](a, b V) (r V) {
	for i := 0; i < len(r); i++ {
		if a[i] == b[i] {
			r[i] = ones
		}
	}
	return r
}

// Select takes lanes of a where mask is set and lanes of b elsewhere.
func Select[V Lanes](mask, a, b V) V {
	return Or(And(mask, a), AndNot(mask, b))
}

// AllZero reports whether every lane is zero (ptest).
func AllZero[V Lanes](a V) bool {
	var acc uint64
	for i := 0; i < len(a); i++ {
		acc |= a[i]
	}
	return acc == 0
}

// Lane extracts lane i.
func Lane[V Lanes](a V, i int) uint64 {
	return a[i]
}
