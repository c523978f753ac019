package cmd

import (
	"fmt"
	"github.com/Borislavv/go-lcg48/config"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"github.com/Borislavv/go-lcg48/internal/oracle"
	"github.com/spf13/cobra"
	"io"
	"os"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Write a reference stream for later validation",
	Long: `Write integer outputs of one stream as a reference stream, one value per line, For example:
  lcg48 capture --seed=42 --mult=3 --count=200 --out=ref.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := streamParams()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if captureOut != "" && captureOut != "-" {
			f, err := os.Create(captureOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", captureOut, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		if err = oracle.Capture(w, engine.NewScalar(params), captureCount); err != nil {
			return err
		}
		logger.Info("captured", "stream", params.String(), "count", captureCount, "out", captureOut)
		return nil
	},
}

var (
	captureOut   string
	captureCount int
)

func init() {
	rootCmd.AddCommand(captureCmd)

	flags := captureCmd.Flags()
	flags.StringVarP(&captureOut, "out", "o", "-", "output file, - for stdout")
	flags.IntVarP(&captureCount, "count", "n", config.DefaultIntIterations, "number of values")
}
