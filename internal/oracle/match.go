package oracle

// Reference values are 31-bit integers (state >> 17). Floating outputs are scaled back onto
// that grid, truncated and allowed to differ by one to absorb rounding. A float carries 24
// significant bits, so it is compared on the reference shifted down by 8.
const (
	twoP31         = 1 << 31
	twoP23         = 1 << 23
	floatRefShift  = 8
	floatTolerance = 1
)

func MatchInt(ref int64, got int32) bool {
	return ref == int64(got)
}

func MatchDouble(ref int64, got float64) bool {
	return within(ref, int64(got*twoP31))
}

func MatchFloat(ref int64, got float32) bool {
	return within(ref>>floatRefShift, int64(float64(got)*twoP23))
}

func within(ref, got int64) bool {
	d := ref - got
	if d < 0 {
		d = -d
	}
	return d <= floatTolerance
}
