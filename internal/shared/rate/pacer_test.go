package rate

import (
	"context"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// TestPacer_Wait_ReturnsToken verifies that Wait receives rate-limited tokens.
func TestPacer_Wait_ReturnsToken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 10)
	require.Equal(t, 10, p.Limit())

	done := make(chan error, 1)
	go func() { done <- p.Wait(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Wait should not block forever")
	}
}

// TestPacer_LimitsRate verifies that tokens are not handed out faster than the limit.
func TestPacer_LimitsRate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 50)
	start := time.Now()
	for i := 0; i < 20; i++ {
		require.NoError(t, p.Wait(ctx))
	}
	// 20 tokens at 50/s take at least ~380ms minus the 5-token burst.
	require.Greater(t, time.Since(start), 200*time.Millisecond)
}

// TestPacer_StopsOnContextCancel verifies that Wait fails once ctx is cancelled.
func TestPacer_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPacer(ctx, 1)
	cancel()

	require.Eventually(t, func() bool {
		return p.Wait(ctx) != nil
	}, time.Second, 10*time.Millisecond)
}

// TestNewPacer_MinBurst verifies that minimum burst size is enforced.
func TestNewPacer_MinBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 1)
	require.Equal(t, 1, cap(p.ch))

	select {
	case <-p.ch:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("pacer should work even with low limit")
	}
}
