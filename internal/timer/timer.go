package timer

import (
	"github.com/benbjohnson/clock"
	"time"
)

// Stopwatch measures wall-clock time on an injectable clock.
type Stopwatch struct {
	clk   clock.Clock
	start time.Time
}

// Start returns a running stopwatch. A nil clk means the real clock.
func Start(clk clock.Clock) *Stopwatch {
	if clk == nil {
		clk = clock.New()
	}
	return &Stopwatch{clk: clk, start: clk.Now()}
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.clk.Since(s.start)
}

// Restart resets the start point and returns the time elapsed before it.
func (s *Stopwatch) Restart() time.Duration {
	now := s.clk.Now()
	d := now.Sub(s.start)
	s.start = now
	return d
}

// Rate returns n events over the elapsed time, per second. Zero elapsed time yields zero.
func (s *Stopwatch) Rate(n int64) float64 {
	return PerSecond(n, s.Elapsed())
}

func PerSecond(n int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
