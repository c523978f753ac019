package telemetry

import (
	"context"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/shared/digest"
	"github.com/Borislavv/go-lcg48/internal/timer"
	"github.com/benbjohnson/clock"
	"log/slog"
	"time"
)

// Validation exposes cumulative oracle counters.
type Validation interface {
	Metrics() (compared, mismatched, exhausted, errors int64)
}

// Throughput exposes the cumulative number of generated outputs.
type Throughput interface {
	Generated() int64
}

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Logs periodically reports per-interval progress of a long validation or bench run.
type Logs struct {
	ctx        context.Context
	cancel     context.CancelFunc
	cfg        *config.TelemetryCfg
	logger     *slog.Logger
	clk        clock.Clock
	validation Validation
	throughput Throughput
	done       chan struct{}
}

// New starts the progress loop when cfg is enabled. Either source may be nil.
func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger *slog.Logger,
	clk clock.Clock,
	validation Validation,
	throughput Throughput,
) *Logs {
	if clk == nil {
		clk = clock.New()
	}
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:        ctx,
		cancel:     cancel,
		cfg:        cfg,
		logger:     logger,
		clk:        clk,
		validation: validation,
		throughput: throughput,
		done:       make(chan struct{}),
	}).run()
}

func (l *Logs) Interval() time.Duration {
	if !l.cfg.Enabled() {
		return 0
	}
	return l.cfg.Interval
}

// Close stops the loop and waits for it to exit.
func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() && l.cfg.Interval > 0 {
		ready := make(chan struct{})
		go l.loop(ready)
		<-ready
	} else {
		close(l.done)
	}
	return l
}

func (l *Logs) loop(ready chan<- struct{}) {
	defer close(l.done)

	ticker := l.clk.Ticker(l.cfg.Interval)
	defer ticker.Stop()

	s := newSampler(l.validation, l.throughput)
	prev := s.snapshot()
	lap := timer.Start(l.clk)
	close(ready)

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur
			elapsed := lap.Restart()

			common := []any{"interval", l.cfg.Interval.String()}

			if l.validation != nil {
				l.logger.Info("validation_progress",
					append(common,
						"compared", int64(d.compared),
						"mismatched", int64(d.mismatched),
						"exhausted", int64(d.exhausted),
						"errors", int64(d.errors),
						"total_compared", int64(cur.compared),
					)...,
				)
			}

			if l.throughput != nil {
				l.logger.Info("generator_progress",
					append(common,
						"generated", int64(d.generated),
						"rate", digest.FmtRate(timer.PerSecond(int64(d.generated), elapsed)),
						"total_generated", int64(cur.generated),
					)...,
				)
			}
		}
	}
}
