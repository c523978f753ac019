package cmd

import (
	"errors"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/oracle"
	"github.com/Borislavv/go-lcg48/internal/telemetry"
	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Certify generated output against a reference stream",
	Long: `Certify the scalar engine and a vector engine against a captured reference stream,
and vector lanes against independent scalar engines. Without --reference the golden
stream of seed 985456376, multiplier 0 is used, For example:
  lcg48 validate --lanes=8
  lcg48 validate --reference=ref.txt --seed=7 --mult=2 --position=3 --streams=4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		vcfg := cfg.Validation
		if !vcfg.Enabled() {
			vcfg = config.Default().Validation
		}
		flags := cmd.Flags()
		if flags.Changed("reference") {
			vcfg.Reference = validateReference
		}
		if flags.Changed("lanes") {
			vcfg.Lanes = validateLanes
		}

		params, err := streamParams()
		if err != nil {
			return err
		}

		src := oracle.GoldenSource(oracle.DefaultGolden)
		if vcfg.Reference != "" {
			src = oracle.FileSource(vcfg.Reference)
		}

		v := oracle.NewValidator(vcfg, nil, logger)
		progress := telemetry.New(cmd.Context(), cfg.Telemetry, logger, nil, v.Report(), nil)
		report, err := v.Run(cmd.Context(), src, params, lanesOrDetect(vcfg.Lanes))
		_ = progress.Close()
		report.Log(logger)
		if err != nil {
			return err
		}
		if !report.Passed() {
			return errValidationFailed
		}
		return nil
	},
}

var (
	validateReference string
	validateLanes     int
)

func init() {
	rootCmd.AddCommand(validateCmd)

	flags := validateCmd.Flags()
	flags.StringVarP(&validateReference, "reference", "r", "", "captured reference stream, one integer per line")
	flags.IntVarP(&validateLanes, "lanes", "l", 0, "vector width to certify: 2, 4, 8 or 16 (default detected)")
}
