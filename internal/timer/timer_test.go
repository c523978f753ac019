package timer

import (
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// TestStopwatch_Elapsed verifies elapsed time follows the clock.
func TestStopwatch_Elapsed(t *testing.T) {
	clk := clock.NewMock()
	sw := Start(clk)

	require.Zero(t, sw.Elapsed())
	clk.Add(1500 * time.Millisecond)
	require.Equal(t, 1500*time.Millisecond, sw.Elapsed())
}

// TestStopwatch_Rate verifies events per second.
func TestStopwatch_Rate(t *testing.T) {
	clk := clock.NewMock()
	sw := Start(clk)

	require.Zero(t, sw.Rate(100), "no time elapsed")
	clk.Add(2 * time.Second)
	require.Equal(t, 50.0, sw.Rate(100))
}

// TestStopwatch_Restart returns the lap and resets the start.
func TestStopwatch_Restart(t *testing.T) {
	clk := clock.NewMock()
	sw := Start(clk)

	clk.Add(time.Second)
	require.Equal(t, time.Second, sw.Restart())
	require.Zero(t, sw.Elapsed())
}

// TestStart_RealClock verifies a nil clock falls back to wall time.
func TestStart_RealClock(t *testing.T) {
	sw := Start(nil)
	time.Sleep(5 * time.Millisecond)
	require.GreaterOrEqual(t, sw.Elapsed(), 5*time.Millisecond)
}
