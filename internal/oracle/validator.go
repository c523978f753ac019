package oracle

import (
	"context"
	"fmt"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/shared/digest"
	"github.com/Borislavv/go-lcg48/internal/simd"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"log/slog"
)

// maxLoggedMismatches caps mismatch records per category.
const maxLoggedMismatches = 8

// Validator certifies generated output against a captured reference stream and the vector
// engines against the scalar one. Mismatches are tallied, never fatal.
type Validator struct {
	cfg    *config.ValidationCfg
	maker  *stream.Maker
	logger *slog.Logger
	report *Report
}

// NewValidator copies cfg and fills unset iteration counts with the defaults; a nil cfg means
// all defaults.
func NewValidator(cfg *config.ValidationCfg, maker *stream.Maker, logger *slog.Logger) *Validator {
	adjusted := config.ValidationCfg{}
	if cfg.Enabled() {
		adjusted = *cfg
	}
	adjusted.Adjust()
	cfg = &adjusted

	if logger == nil {
		logger = slog.Default()
	}
	if maker == nil {
		maker = stream.NewMaker(nil, logger)
	}
	return &Validator{cfg: cfg, maker: maker, logger: logger, report: NewReport()}
}

func (v *Validator) Report() *Report { return v.report }

// Run checks every kind with the scalar engine, a vector engine of the given width carrying
// params on every lane, and the same width carrying distinct streams against scalar engines.
// It stops early only when ctx is done or the reference cannot be opened.
func (v *Validator) Run(ctx context.Context, src Source, params stream.Params, lanes int) (*Report, error) {
	if !simd.IsWidth(lanes) {
		return v.report, fmt.Errorf("%w: %d lanes", engine.ErrLaneCount, lanes)
	}

	v.logger.Info("validation started", "run_id", v.report.RunID, "stream", params.String(), "lanes", lanes)

	for _, kind := range Kinds {
		n := v.iterations(kind)
		for _, check := range []func() error{
			func() error { return v.CheckScalar(src, kind, params, n) },
			func() error { return v.CheckVector(src, kind, params, lanes, n) },
			func() error { return v.CheckEquivalence(kind, params.Seed, params.MultIndex, lanes, n) },
		} {
			if err := ctx.Err(); err != nil {
				return v.report, err
			}
			if err := check(); err != nil {
				return v.report, err
			}
		}
	}

	return v.report, nil
}

// CheckScalar compares n outputs of a scalar engine against the reference.
func (v *Validator) CheckScalar(src Source, kind Kind, params stream.Params, n int) error {
	c := Category{Kind: kind, Impl: ImplScalar}
	return v.withReference(src, c, func(ref *Reference) {
		g := engine.NewScalar(params)
		logged := 0
		for i := 0; i < n; i++ {
			want, ok := ref.Next()
			if !ok {
				v.exhausted(c, ref, n-i)
				return
			}
			got, ok := draw(kind, g, want)
			v.report.record(c, ok)
			if !ok && logged < maxLoggedMismatches {
				logged++
				v.logger.Warn("mismatch", "category", c.String(), "index", i, "want", want, "got", got)
			}
		}
	})
}

// CheckVector loads params on every lane and compares each lane against the reference.
func (v *Validator) CheckVector(src Source, kind Kind, params stream.Params, lanes, n int) error {
	c := Category{Kind: kind, Impl: ImplVector}
	same := make([]stream.Params, lanes)
	for i := range same {
		same[i] = params
	}
	batch, err := engine.NewBatch(same)
	if err != nil {
		v.report.fail()
		return err
	}

	return v.withReference(src, c, func(ref *Reference) {
		out := newLaneBuffers(lanes)
		logged := 0
		for i := 0; i < n; i++ {
			want, ok := ref.Next()
			if !ok {
				v.exhausted(c, ref, (n-i)*lanes)
				return
			}
			out.fill(kind, batch)
			for lane := 0; lane < lanes; lane++ {
				ok := out.match(kind, lane, want)
				v.report.record(c, ok)
				if !ok && logged < maxLoggedMismatches {
					logged++
					v.logger.Warn("mismatch", "category", c.String(), "index", i, "lane", lane,
						"want", want, "got", out.value(kind, lane))
				}
			}
		}
	})
}

// CheckEquivalence runs `lanes` distinct streams of one family through a vector engine and through
// independent scalar engines. Every output is matched under the oracle tolerance and every
// lane's whole sequence is then fingerprinted and required to be bit-identical.
func (v *Validator) CheckEquivalence(kind Kind, seed uint32, multIndex, lanes, n int) error {
	c := Category{Kind: kind, Impl: ImplEquivalence}
	if n <= 0 {
		return nil
	}
	family, err := v.maker.Family(int32(seed), int32(multIndex), int32(lanes))
	if err != nil {
		v.report.fail()
		return err
	}
	batch, err := engine.NewBatch(family)
	if err != nil {
		v.report.fail()
		return err
	}

	scalars := make([]*engine.Scalar, lanes)
	for i, p := range family {
		scalars[i] = engine.NewScalar(p)
	}

	seqs := make([]sequence, lanes)
	ref := make([]sequence, lanes)
	out := newLaneBuffers(lanes)
	logged := 0

	for i := 0; i < n; i++ {
		out.fill(kind, batch)
		for lane, s := range scalars {
			raw := s.Next()
			want := int64(engine.ToInt(raw))
			ok := out.match(kind, lane, want)
			v.report.record(c, ok)
			if !ok && logged < maxLoggedMismatches {
				logged++
				v.logger.Warn("lane diverged from scalar", "category", c.String(), "index", i, "lane", lane,
					"want", want, "got", out.value(kind, lane))
			}
			seqs[lane].add(kind, out, lane)
			ref[lane].addRaw(kind, raw)
		}
	}

	for lane := range seqs {
		ok := seqs[lane].fingerprint(kind) == ref[lane].fingerprint(kind)
		v.report.record(c, ok)
		if !ok {
			v.logger.Warn("lane fingerprint differs from scalar", "category", c.String(), "lane", lane)
		}
	}
	return nil
}

/**
 * Private API.
 */

func (v *Validator) iterations(kind Kind) int {
	switch kind {
	case KindInt:
		return v.cfg.IntIterations
	case KindFloat:
		return v.cfg.FloatIterations
	default:
		return v.cfg.DoubleIterations
	}
}

func (v *Validator) withReference(src Source, c Category, fn func(ref *Reference)) error {
	rc, err := src()
	if err != nil {
		v.report.fail()
		return err
	}
	defer func() { _ = rc.Close() }()

	ref := NewReference(rc)
	fn(ref)
	if err := ref.Err(); err != nil {
		v.report.fail()
		v.logger.Error("reference stream unreadable", "category", c.String(), "err", err)
	}
	return nil
}

func (v *Validator) exhausted(c Category, ref *Reference, missing int) {
	v.report.exhaust(c, int64(missing))
	if ref.Err() == nil {
		v.logger.Warn("reference stream ended early", "category", c.String(),
			"read", ref.Read(), "missing", missing)
	}
}

// draw advances g once for kind and matches the output against want.
func draw(kind Kind, g engine.Generator, want int64) (any, bool) {
	switch kind {
	case KindInt:
		x := g.NextInt()
		return x, MatchInt(want, x)
	case KindFloat:
		x := g.NextFloat()
		return x, MatchFloat(want, x)
	default:
		x := g.NextDouble()
		return x, MatchDouble(want, x)
	}
}

type laneBuffers struct {
	ints    []int32
	floats  []float32
	doubles []float64
}

func newLaneBuffers(lanes int) *laneBuffers {
	return &laneBuffers{
		ints:    make([]int32, lanes),
		floats:  make([]float32, lanes),
		doubles: make([]float64, lanes),
	}
}

func (b *laneBuffers) fill(kind Kind, batch engine.Batch) {
	switch kind {
	case KindInt:
		batch.NextInts(b.ints)
	case KindFloat:
		batch.NextFloats(b.floats)
	default:
		batch.NextDoubles(b.doubles)
	}
}

func (b *laneBuffers) match(kind Kind, lane int, want int64) bool {
	switch kind {
	case KindInt:
		return MatchInt(want, b.ints[lane])
	case KindFloat:
		return MatchFloat(want, b.floats[lane])
	default:
		return MatchDouble(want, b.doubles[lane])
	}
}

func (b *laneBuffers) value(kind Kind, lane int) any {
	switch kind {
	case KindInt:
		return b.ints[lane]
	case KindFloat:
		return b.floats[lane]
	default:
		return b.doubles[lane]
	}
}

// sequence collects one lane's outputs for fingerprinting.
type sequence struct {
	ints    []int32
	floats  []float32
	doubles []float64
}

func (s *sequence) add(kind Kind, b *laneBuffers, lane int) {
	switch kind {
	case KindInt:
		s.ints = append(s.ints, b.ints[lane])
	case KindFloat:
		s.floats = append(s.floats, b.floats[lane])
	default:
		s.doubles = append(s.doubles, b.doubles[lane])
	}
}

func (s *sequence) addRaw(kind Kind, raw uint64) {
	switch kind {
	case KindInt:
		s.ints = append(s.ints, engine.ToInt(raw))
	case KindFloat:
		s.floats = append(s.floats, engine.ToFloat(raw))
	default:
		s.doubles = append(s.doubles, engine.ToDouble(raw))
	}
}

func (s *sequence) fingerprint(kind Kind) uint64 {
	switch kind {
	case KindInt:
		return digest.Ints(s.ints)
	case KindFloat:
		return digest.Floats(s.floats)
	default:
		return digest.Doubles(s.doubles)
	}
}
