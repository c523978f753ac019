package digest

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestInts_Equal verifies equal sequences share a fingerprint.
func TestInts_Equal(t *testing.T) {
	a := []int32{1519318098, 2086130914, 1878113605}
	b := []int32{1519318098, 2086130914, 1878113605}

	require.Equal(t, Ints(a), Ints(b))
}

// TestInts_NotEqual verifies a single changed value or reordering changes the fingerprint.
func TestInts_NotEqual(t *testing.T) {
	a := []int32{1, 2, 3, 4}
	require.NotEqual(t, Ints(a), Ints([]int32{1, 2, 3, 5}))
	require.NotEqual(t, Ints(a), Ints([]int32{4, 3, 2, 1}))
	require.NotEqual(t, Ints(a), Ints(a[:3]))
}

// TestFloats_BitPattern verifies floats are fingerprinted by their bits.
func TestFloats_BitPattern(t *testing.T) {
	require.Equal(t, Floats([]float32{0.5, 0.25}), Floats([]float32{0.5, 0.25}))
	require.NotEqual(t, Floats([]float32{0.5}), Floats([]float32{0.5000001}))
	require.NotEqual(t, Doubles([]float64{0.5}), Doubles([]float64{0.5000000000000001}))
}

// TestFmtRate_FormatsCorrectly verifies throughput formatting for different magnitudes.
func TestFmtRate_FormatsCorrectly(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected string
	}{
		{"units", 512, "512/s"},
		{"thousands", 1500, "1.50K/s"},
		{"millions", 250_000_000, "250.00M/s"},
		{"billions", 3.2e9, "3.20G/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FmtRate(tt.rate))
		})
	}
}
