package bench

import (
	"context"
	"fmt"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/shared/digest"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"github.com/Borislavv/go-lcg48/internal/timer"
	"github.com/benbjohnson/clock"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// checkEvery is how many outputs run between context checks.
const checkEvery = 1 << 16

type Result struct {
	Impl     string
	Streams  int
	Outputs  int64
	Elapsed  time.Duration
	Rate     float64
	Checksum uint64
}

// Bench draws integer outputs from one family of streams three ways: scalar engines one after
// another, scalar engines on one goroutine each, and a single vector engine. All three must
// agree on the checksum.
type Bench struct {
	cfg       *config.BenchCfg
	logger    *slog.Logger
	clk       clock.Clock
	generated atomic.Int64
}

func New(cfg *config.BenchCfg, logger *slog.Logger, clk clock.Clock) *Bench {
	if !cfg.Enabled() {
		cfg = &config.BenchCfg{Iterations: config.DefaultBenchIterations}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Bench{cfg: cfg, logger: logger, clk: clk}
}

// Generated reports outputs drawn so far across all runs.
func (b *Bench) Generated() int64 { return b.generated.Load() }

func (b *Bench) Run(ctx context.Context, family []stream.Params) ([]Result, error) {
	batch, err := engine.NewBatch(family)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, 3)
	for _, run := range []struct {
		impl string
		fn   func(ctx context.Context) ([]int32, error)
	}{
		{"scalar", func(ctx context.Context) ([]int32, error) { return b.sequential(ctx, family) }},
		{"parallel", func(ctx context.Context) ([]int32, error) { return b.parallel(ctx, family) }},
		{"vector", func(ctx context.Context) ([]int32, error) { return b.vector(ctx, batch) }},
	} {
		sw := timer.Start(b.clk)
		sums, err := run.fn(ctx)
		if err != nil {
			return results, err
		}
		elapsed := sw.Elapsed()
		outputs := int64(b.cfg.Iterations) * int64(len(family))

		r := Result{
			Impl:     run.impl,
			Streams:  len(family),
			Outputs:  outputs,
			Elapsed:  elapsed,
			Rate:     timer.PerSecond(outputs, elapsed),
			Checksum: digest.Ints(sums),
		}
		results = append(results, r)
		b.logger.Info("bench", "impl", r.Impl, "streams", r.Streams, "outputs", r.Outputs,
			"elapsed", r.Elapsed.String(), "rate", digest.FmtRate(r.Rate), "checksum", fmt.Sprintf("%#016x", r.Checksum))
	}

	for _, r := range results[1:] {
		if r.Checksum != results[0].Checksum {
			return results, fmt.Errorf("bench: %s checksum %#x differs from %s checksum %#x",
				r.Impl, r.Checksum, results[0].Impl, results[0].Checksum)
		}
	}
	return results, nil
}

/**
 * Private API.
 */

// drain xor-folds n outputs of one stream.
func (b *Bench) drain(ctx context.Context, g *engine.Scalar) (int32, error) {
	var acc int32
	n := b.cfg.Iterations
	for done := 0; done < n; {
		chunk := min(checkEvery, n-done)
		for i := 0; i < chunk; i++ {
			acc ^= g.NextInt()
		}
		done += chunk
		b.generated.Add(int64(chunk))
		if err := ctx.Err(); err != nil {
			return acc, err
		}
	}
	return acc, nil
}

func (b *Bench) sequential(ctx context.Context, family []stream.Params) ([]int32, error) {
	sums := make([]int32, len(family))
	for i, p := range family {
		acc, err := b.drain(ctx, engine.NewScalar(p))
		if err != nil {
			return nil, err
		}
		sums[i] = acc
	}
	return sums, nil
}

// parallel gives every stream its own goroutine; streams share nothing, so no locking is needed.
func (b *Bench) parallel(ctx context.Context, family []stream.Params) ([]int32, error) {
	sums := make([]int32, len(family))
	errs := make([]error, len(family))

	var wg sync.WaitGroup
	for i, p := range family {
		wg.Go(func() {
			sums[i], errs[i] = b.drain(ctx, engine.NewScalar(p))
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sums, nil
}

func (b *Bench) vector(ctx context.Context, batch engine.Batch) ([]int32, error) {
	lanes := batch.Lanes()
	sums := make([]int32, lanes)
	out := make([]int32, lanes)

	n := b.cfg.Iterations
	for done := 0; done < n; {
		chunk := min(checkEvery, n-done)
		for i := 0; i < chunk; i++ {
			batch.NextInts(out)
			for l, x := range out {
				sums[l] ^= x
			}
		}
		done += chunk
		b.generated.Add(int64(chunk * lanes))
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return sums, nil
}
