package cmd

import (
	"bufio"
	"context"
	"fmt"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/shared/rate"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"github.com/spf13/cobra"
	"io"
	"os"
	"strconv"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print random deviates",
	Long: `Print deviates of one stream, or of a whole family side by side with --lanes.
A scalar stream can be checkpointed and resumed later, For example:
  lcg48 generate --kind=double --count=5
  lcg48 generate --lanes=4 --count=3
  lcg48 generate --count=1000 --checkpoint=run.state
  lcg48 generate --count=1000 --resume=run.state
  lcg48 generate --count=100 --rate=10 | consumer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(generateKind)
		if err != nil {
			return err
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		out := &rowWriter{w: w}
		if generateRate > 0 {
			out.ctx = cmd.Context()
			out.pacer = rate.NewPacer(cmd.Context(), generateRate)
		}
		if generateLanes > 0 {
			err = generateFamily(out, kind)
		} else {
			err = generateScalar(out, kind)
		}
		if err != nil {
			return err
		}
		return w.Flush()
	},
}

var (
	generateKind       string
	generateCount      int
	generateLanes      int
	generateCheckpoint string
	generateResume     string
	generateRate       int
)

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringVarP(&generateKind, "kind", "k", "int", "output kind: int, float or double")
	flags.IntVarP(&generateCount, "count", "n", 10, "values per stream")
	flags.IntVarP(&generateLanes, "lanes", "l", 0, "vector width; streams 0..lanes-1 are printed side by side")
	flags.StringVar(&generateCheckpoint, "checkpoint", "", "write the engine state here when done")
	flags.StringVar(&generateResume, "resume", "", "continue from a checkpoint instead of the configured stream")
	flags.IntVar(&generateRate, "rate", 0, "rows per second, 0 for unlimited")
}

type outputKind uint8

const (
	outputInt outputKind = iota
	outputFloat
	outputDouble
)

func parseKind(s string) (outputKind, error) {
	switch s {
	case "int":
		return outputInt, nil
	case "float":
		return outputFloat, nil
	case "double":
		return outputDouble, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func generateScalar(w *rowWriter, kind outputKind) error {
	g := &engine.Scalar{}
	if generateResume != "" {
		data, err := os.ReadFile(generateResume)
		if err != nil {
			return fmt.Errorf("read checkpoint: %w", err)
		}
		if err = g.UnmarshalBinary(data); err != nil {
			return fmt.Errorf("%s: %w", generateResume, err)
		}
		logger.Info("resumed", "engine", g.String())
	} else {
		params, err := streamParams()
		if err != nil {
			return err
		}
		g.Init(params)
	}

	buf := make([]byte, 0, 32)
	for i := 0; i < generateCount; i++ {
		buf = appendValue(buf[:0], kind, g)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	if generateCheckpoint != "" {
		data, err := g.MarshalBinary()
		if err != nil {
			return err
		}
		if err = os.WriteFile(generateCheckpoint, data, 0o644); err != nil {
			return fmt.Errorf("write checkpoint: %w", err)
		}
		logger.Info("checkpoint written", "engine", g.String(), "path", generateCheckpoint)
	}
	return nil
}

func generateFamily(w *rowWriter, kind outputKind) error {
	if generateCheckpoint != "" || generateResume != "" {
		return fmt.Errorf("checkpoints need a scalar stream: drop --lanes")
	}
	family, err := stream.NewMaker(nil, logger).Family(streamSeed(), cfg.Stream.Multiplier, int32(generateLanes))
	if err != nil {
		return err
	}
	batch, err := engine.NewBatch(family)
	if err != nil {
		return err
	}

	ints := make([]int32, batch.Lanes())
	floats := make([]float32, batch.Lanes())
	doubles := make([]float64, batch.Lanes())
	buf := make([]byte, 0, 32*batch.Lanes())
	for i := 0; i < generateCount; i++ {
		buf = buf[:0]
		switch kind {
		case outputInt:
			batch.NextInts(ints)
		case outputFloat:
			batch.NextFloats(floats)
		default:
			batch.NextDoubles(doubles)
		}
		for lane := 0; lane < batch.Lanes(); lane++ {
			if lane > 0 {
				buf = append(buf, '\t')
			}
			switch kind {
			case outputInt:
				buf = strconv.AppendInt(buf, int64(ints[lane]), 10)
			case outputFloat:
				buf = strconv.AppendFloat(buf, float64(floats[lane]), 'g', -1, 32)
			default:
				buf = strconv.AppendFloat(buf, doubles[lane], 'g', -1, 64)
			}
		}
		buf = append(buf, '\n')
		if _, err = w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// rowWriter writes whole rows, paced when a pacer is set.
type rowWriter struct {
	w     io.Writer
	ctx   context.Context
	pacer *rate.Pacer
}

func (r *rowWriter) Write(row []byte) (int, error) {
	if r.pacer != nil {
		if err := r.pacer.Wait(r.ctx); err != nil {
			return 0, err
		}
		// Paced rows go out as they are produced.
		defer func() {
			if f, ok := r.w.(*bufio.Writer); ok {
				_ = f.Flush()
			}
		}()
	}
	return r.w.Write(row)
}

func appendValue(buf []byte, kind outputKind, g engine.Generator) []byte {
	switch kind {
	case outputInt:
		return strconv.AppendInt(buf, int64(g.NextInt()), 10)
	case outputFloat:
		return strconv.AppendFloat(buf, float64(g.NextFloat()), 'g', -1, 32)
	default:
		return strconv.AppendFloat(buf, g.NextDouble(), 'g', -1, 64)
	}
}
