package lcg48

import (
	"context"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/oracle"
	"github.com/Borislavv/go-lcg48/internal/shared/random"
	"github.com/Borislavv/go-lcg48/internal/simd"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"log/slog"
)

type (
	Params    = stream.Params
	Generator = engine.Generator
	Scalar    = engine.Scalar
	Batch     = engine.Batch
	Source    = random.Source
	Report    = oracle.Report
)

const MaxStreams = stream.MaxStreams

var (
	ErrStreamOutOfRange = stream.ErrStreamOutOfRange
	ErrTooManyStreams   = stream.ErrTooManyStreams
	ErrLaneCount        = engine.ErrLaneCount
	ErrBadState         = engine.ErrBadState
	ErrNotReady         = engine.ErrNotReady
)

// New returns a ready scalar generator for stream position of total.
func New(seed, multIndex, position, total int32) (*Scalar, error) {
	p, err := stream.Make(seed, multIndex, position, total)
	if err != nil {
		return nil, err
	}
	return engine.NewScalar(p), nil
}

// Family returns the parameters of all total streams spawned together.
func Family(seed, multIndex, total int32) ([]Params, error) {
	return stream.Family(seed, multIndex, total)
}

// NewBatch returns a vector generator with one lane per params entry: 2, 4, 8 or 16.
func NewBatch(params []Params) (Batch, error) {
	return engine.NewBatch(params)
}

// NewFamily returns a vector generator carrying streams 0..lanes-1 of one spawn.
// Zero lanes picks the width the CPU handles natively.
func NewFamily(seed, multIndex int32, lanes int) (Batch, error) {
	if lanes == 0 {
		lanes = simd.DetectWidth()
	}
	family, err := stream.Family(seed, multIndex, int32(lanes))
	if err != nil {
		return nil, err
	}
	return engine.NewBatch(family)
}

// NewShared returns a generator safe for concurrent use, spread over shards streams.
func NewShared(seed int32, shards int) (*Source, error) {
	return random.New(seed, shards)
}

func SeedFromLabel(label string) int32 { return stream.SeedFromLabel(label) }

func DetectWidth() int { return simd.DetectWidth() }

// Validate certifies params against cfg.Reference, or the golden stream when it is empty, on
// the scalar engine and on a vector engine of cfg.Lanes lanes. A nil cfg runs the default
// iteration counts against the golden stream.
func Validate(ctx context.Context, cfg *config.ValidationCfg, params Params, logger *slog.Logger) (*Report, error) {
	if !cfg.Enabled() {
		cfg = &config.ValidationCfg{}
	}
	src := oracle.GoldenSource(oracle.DefaultGolden)
	if cfg.Reference != "" {
		src = oracle.FileSource(cfg.Reference)
	}
	lanes := cfg.Lanes
	if lanes == 0 {
		lanes = simd.DetectWidth()
	}
	return oracle.NewValidator(cfg, nil, logger).Run(ctx, src, params, lanes)
}
