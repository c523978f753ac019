package engine

import "github.com/Borislavv/go-lcg48/internal/stream"

// Step is the recurrence every engine shares.
func Step(state, mult, prime uint64) uint64 {
	return (state*mult + prime) & stream.LSB48
}

// jump advances state by n steps of x -> x*mult + prime in O(log n) by squaring the affine map.
// Arithmetic runs mod 2^64 and is masked once: 2^48 divides 2^64, so the result equals n
// masked single steps.
func jump(state, n, mult, prime uint64) uint64 {
	accMult, accPlus := uint64(1), uint64(0)
	curMult, curPlus := mult, prime
	for n != 0 {
		if n&1 != 0 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus *= curMult + 1
		curMult *= curMult
		n >>= 1
	}
	return (accMult*state + accPlus) & stream.LSB48
}
