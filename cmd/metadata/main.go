// Command metadata writes the JSON metadata files of the ticket series.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zkarcade/campaign-tools/config"
	"github.com/zkarcade/campaign-tools/metadata"
	"github.com/zkarcade/campaign-tools/metrics"
	"github.com/zkarcade/campaign-tools/utils"
)

var version = "dev" // is set during build process

type options struct {
	configFile  string
	count       int
	outDir      string
	metricsFile string
	debug       bool
	logJSON     bool
}

func newCommand(logOutput io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "metadata",
		Short:   "Generate token metadata files",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			logger := utils.SetupLogger(logOutput, "metadata", opts.debug, opts.logJSON)
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				logger.Error("Could not load config", "error", err)
				return err
			}
			if cmd.Flags().Changed("count") {
				cfg.Metadata.Count = opts.count
			}
			if opts.outDir != "" {
				cfg.Metadata.OutDir = opts.outDir
			}
			if opts.metricsFile != "" {
				cfg.Metadata.MetricsFile = opts.metricsFile
			}
			if err := cfg.Validate(); err != nil {
				logger.Error("Invalid configuration", "error", err)
				return err
			}

			g, err := metadata.NewGenerator(cfg.Metadata, logger, metrics.NewRecorder())
			if err != nil {
				logger.Error("Could not create generator", "error", err)
				return err
			}
			dir, err := g.Generate()
			if err != nil {
				logger.Error("Metadata generation failed", "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files under %s\n", cfg.Metadata.Count, dir)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file (defaults are used when empty)")
	flags.IntVar(&opts.count, "count", 0, "number of tokens (overrides metadata.count)")
	flags.StringVar(&opts.outDir, "out", "", "output root, files go to <out>/metadata (overrides metadata.outDir)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	flags.BoolVar(&opts.debug, "debug", false, "print debug output")
	flags.BoolVar(&opts.logJSON, "log-json", false, "log in JSON")

	return cmd
}

func main() {
	if err := newCommand(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
