package bench

import (
	"context"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestBench_ImplementationsAgree verifies scalar, parallel and vector runs produce one checksum.
func TestBench_ImplementationsAgree(t *testing.T) {
	for _, lanes := range []int32{2, 4, 8, 16} {
		family, err := stream.Family(11, 1, lanes)
		require.NoError(t, err)

		b := New(&config.BenchCfg{Iterations: 5000}, quietLogger(), clock.NewMock())
		results, err := b.Run(context.Background(), family)
		require.NoError(t, err)
		require.Len(t, results, 3)

		for _, r := range results {
			require.Equal(t, results[0].Checksum, r.Checksum, r.Impl)
			require.Equal(t, int64(5000)*int64(lanes), r.Outputs)
			require.Zero(t, r.Rate, "mock clock does not advance")
		}
		require.Equal(t, int64(3*5000)*int64(lanes), b.Generated())
	}
}

// TestBench_RejectsWidth verifies unsupported family sizes are errors.
func TestBench_RejectsWidth(t *testing.T) {
	family, err := stream.Family(11, 1, 3)
	require.NoError(t, err)

	_, err = New(nil, quietLogger(), nil).Run(context.Background(), family)
	require.ErrorIs(t, err, engine.ErrLaneCount)
}

// TestBench_Cancelled stops at the first context check.
func TestBench_Cancelled(t *testing.T) {
	family, err := stream.Family(11, 1, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(&config.BenchCfg{Iterations: 1 << 20}, quietLogger(), clock.NewMock()).Run(ctx, family)
	require.ErrorIs(t, err, context.Canceled)
}
