package simd

// Mul64 returns a*b mod 2^64 per lane using only 32x32->64 multiplies:
//
//	cross   = a_lo*b_hi + a_hi*b_lo
//	product = ((cross << 32) & 0xFFFFFFFF00000000) + a_lo*b_lo
//
// a_hi*b_hi lands entirely above bit 63 and is never computed.
func Mul64[V Lanes](a, b V) V {
	aHi := ShiftRight(a, 32)
	bHi := ShiftRight(b, 32)
	cross := Add(MulU32(a, bHi), MulU32(aHi, b))
	high := And(ShiftLeft(cross, 32), Broadcast[V](hi32))
	return Add(high, MulU32(a, b))
}

// MulAddMask returns (a*b + c) & mask per lane.
func MulAddMask[V Lanes](a, b, c, mask V) V {
	return And(Add(Mul64(a, b), c), mask)
}

// WidenFloat64 converts every lane to float64 into dst.
//
// Vector units before AVX-512DQ cannot convert unsigned 64-bit lanes, so this spills the
// register and converts lane by lane. It is off the multiply path but it is the slow step of
// every floating-point extraction.
func WidenFloat64[V Lanes](dst []float64, v V) {
	_ = dst[len(v)-1]
	for i := 0; i < len(v); i++ {
		dst[i] = float64(v[i])
	}
}
