package engine

// TwoM48 is 2^-48, the scale from a 48-bit state to [0, 1).
const TwoM48 = 3.5527136788005008e-15

// IntShift drops the 17 low bits of a 48-bit state leaving a non-negative 31-bit integer.
const IntShift = 17

// ToInt projects a 48-bit state onto [0, 2^31).
func ToInt(state uint64) int32 {
	return int32(state >> IntShift)
}

// ToDouble projects a 48-bit state onto [0, 1); the conversion is exact.
func ToDouble(state uint64) float64 {
	return float64(state) * TwoM48
}

// ToFloat is ToDouble narrowed to single precision. Rounding to nearest may yield exactly
// 1.0 for states within half a float ulp of 2^48.
func ToFloat(state uint64) float32 {
	return float32(float64(state) * TwoM48)
}
