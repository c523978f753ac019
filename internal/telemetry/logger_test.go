package telemetry

import (
	"bytes"
	"context"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeValidation struct{ compared, mismatched atomic.Int64 }

func (f *fakeValidation) Metrics() (compared, mismatched, exhausted, errors int64) {
	return f.compared.Load(), f.mismatched.Load(), 0, 0
}

type fakeThroughput struct{ n atomic.Int64 }

func (f *fakeThroughput) Generated() int64 { return f.n.Load() }

// TestLogs_ReportsDeltas verifies each tick logs per-interval deltas.
func TestLogs_ReportsDeltas(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	clk := clock.NewMock()
	v, g := &fakeValidation{}, &fakeThroughput{}

	l := New(context.Background(), &config.TelemetryCfg{Interval: time.Second}, logger, clk, v, g)
	defer l.Close()
	require.Equal(t, time.Second, l.Interval())

	v.compared.Add(40)
	v.mismatched.Add(2)
	g.n.Add(1_000_000)
	clk.Add(time.Second)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "generator_progress")
	}, time.Second, 5*time.Millisecond)

	logs := out.String()
	require.Contains(t, logs, `"msg":"validation_progress"`)
	require.Contains(t, logs, `"compared":40`)
	require.Contains(t, logs, `"mismatched":2`)
	require.Contains(t, logs, `"generated":1000000`)
	require.Contains(t, logs, `"rate":"1.00M/s"`)
}

// TestLogs_Disabled verifies a nil config starts nothing and closes cleanly.
func TestLogs_Disabled(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	clk := clock.NewMock()

	l := New(context.Background(), nil, logger, clk, &fakeValidation{}, nil)
	require.Zero(t, l.Interval())
	clk.Add(time.Minute)
	require.NoError(t, l.Close())
	require.Empty(t, out.String())
}

// TestLogs_StopsOnContextCancel verifies the loop exits with its parent context.
func TestLogs_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(ctx, &config.TelemetryCfg{Interval: time.Hour}, slog.Default(), clock.NewMock(), nil, &fakeThroughput{})
	cancel()

	select {
	case <-l.done:
	case <-time.After(time.Second):
		t.Fatal("telemetry loop did not stop")
	}
	require.NoError(t, l.Close())
}

// TestDeltaSnapshot_CounterReset treats a decreasing counter as a fresh start.
func TestDeltaSnapshot_CounterReset(t *testing.T) {
	d := deltaSnapshot(snapshot{compared: 10, generated: 100}, snapshot{compared: 15, generated: 30})
	require.Equal(t, uint64(5), d.compared)
	require.Equal(t, uint64(30), d.generated)
}
