package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/simd"
	"github.com/Borislavv/go-lcg48/internal/stream"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

const defaultConfigName = ".lcg48.yaml"

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   *slog.Logger

	// Shared stream flags; they override the config file when set.
	seed       int32
	label      string
	multIndex  int32
	position   int32
	numStreams int32
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lcg48",
	Short: "48-bit LCG parallel random streams.",
	Long: `48-bit LCG parallel random streams.
Validate, capture, generate and benchmark independent streams, For example:
  lcg48 validate --lanes=4
  lcg48 capture --seed=985456376 --count=200 --out=ref.txt
  lcg48 generate --label=photons --streams=8 --lanes=8 --kind=double --count=10
  lcg48 bench --iterations=1000000`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+defaultConfigName+")")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.Int32Var(&seed, "seed", config.DefaultSeed, "stream seed, low 31 bits are used")
	flags.StringVar(&label, "label", "", "derive the seed from a name")
	flags.Int32VarP(&multIndex, "mult", "m", 0, "multiplier index 0..6")
	flags.Int32VarP(&position, "position", "p", 0, "stream position")
	flags.Int32VarP(&numStreams, "streams", "s", 1, "number of streams spawned together")
}

func setup(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("service", "lcg48"))
	slog.SetDefault(logger)

	var err error
	if cfg, err = loadConfig(); err != nil {
		return err
	}
	applyStreamFlags(cmd)

	f := simd.Detect()
	logger.Debug("cpu", "brand", f.Brand, "vendor", f.Vendor, "cores", f.Cores, "isa", f.ISA, "lanes", f.Lanes)
	return nil
}

// loadConfig reads the file named by --config, or the default file in the home directory if it exists.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			return config.Default(), nil
		}
		path = filepath.Join(home, defaultConfigName)
		if _, err = os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}

	c, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Info("using config file", "path", path)
	return c, nil
}

func applyStreamFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Stream.Seed = seed
	}
	if flags.Changed("label") {
		cfg.Stream.Label = label
	}
	if flags.Changed("mult") {
		cfg.Stream.Multiplier = multIndex
	}
	if flags.Changed("position") {
		cfg.Stream.Position = position
	}
	if flags.Changed("streams") {
		cfg.Stream.Total = numStreams
	}
	cfg.AdjustConfig()
}

// streamSeed returns the configured seed, derived from the label when one is set.
func streamSeed() int32 {
	if cfg.Stream.Label != "" {
		return stream.SeedFromLabel(cfg.Stream.Label)
	}
	return cfg.Stream.Seed
}

func streamParams() (stream.Params, error) {
	return stream.NewMaker(nil, logger).Make(streamSeed(), cfg.Stream.Multiplier, cfg.Stream.Position, cfg.Stream.Total)
}

// lanesOrDetect returns n, or the native width when n is zero.
func lanesOrDetect(n int) int {
	if n == 0 {
		return simd.DetectWidth()
	}
	return n
}
