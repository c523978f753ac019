package cmd

import (
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/bench"
	"github.com/Borislavv/go-lcg48/internal/stream"
	"github.com/Borislavv/go-lcg48/internal/telemetry"
	"github.com/spf13/cobra"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure scalar and vector throughput",
	Long: `Draw the same family of streams with scalar engines, with one goroutine per stream,
and with one vector engine, then compare rates and checksums, For example:
  lcg48 bench --lanes=8 --iterations=10000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bcfg := cfg.Bench
		if !bcfg.Enabled() {
			bcfg = config.Default().Bench
		}
		flags := cmd.Flags()
		if flags.Changed("iterations") {
			bcfg.Iterations = benchIterations
		}
		if flags.Changed("lanes") {
			bcfg.Lanes = benchLanes
		}

		family, err := stream.NewMaker(nil, logger).Family(streamSeed(), cfg.Stream.Multiplier, int32(lanesOrDetect(bcfg.Lanes)))
		if err != nil {
			return err
		}

		b := bench.New(bcfg, logger, nil)
		progress := telemetry.New(cmd.Context(), cfg.Telemetry, logger, nil, nil, b)
		defer func() { _ = progress.Close() }()

		_, err = b.Run(cmd.Context(), family)
		return err
	},
}

var (
	benchIterations int
	benchLanes      int
)

func init() {
	rootCmd.AddCommand(benchCmd)

	flags := benchCmd.Flags()
	flags.IntVarP(&benchIterations, "iterations", "i", config.DefaultBenchIterations, "outputs drawn per stream")
	flags.IntVarP(&benchLanes, "lanes", "l", 0, "vector width: 2, 4, 8 or 16 (default detected)")
}
