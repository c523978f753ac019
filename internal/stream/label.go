package stream

import "github.com/zeebo/xxh3"

// SeedFromLabel derives a 31-bit seed from a human-readable run label, so that simulations
// can name their seeds ("run-2024-eu/replica-3") instead of hard-coding integers.
func SeedFromLabel(label string) int32 {
	h := xxh3.HashString(label)
	return int32((h ^ h>>32) & SeedMask)
}
