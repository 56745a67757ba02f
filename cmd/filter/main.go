// Command filter removes repeated and sanctioned addresses from a campaign whitelist.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zkarcade/campaign-tools/allowlist"
	"github.com/zkarcade/campaign-tools/config"
	"github.com/zkarcade/campaign-tools/metrics"
	"github.com/zkarcade/campaign-tools/types"
	"github.com/zkarcade/campaign-tools/utils"
)

var version = "dev" // is set during build process

type options struct {
	configFile  string
	ofacFile    string
	metricsFile string
	debug       bool
	logJSON     bool
}

func newCommand(logOutput io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "filter <whitelist_path> <inserted_dir>",
		Short:   "Filter a whitelist against previous campaigns and the OFAC list",
		Version: version,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid past this point, errors are not usage errors
			cmd.SilenceUsage = true
			return run(cmd, opts, args[0], args[1], logOutput)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file (defaults are used when empty)")
	flags.StringVar(&opts.ofacFile, "ofac", "", "sanctioned addresses CSV (overrides filter.sanctionsFile)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	flags.BoolVar(&opts.debug, "debug", false, "print debug output")
	flags.BoolVar(&opts.logJSON, "log-json", false, "log in JSON")

	return cmd
}

func run(cmd *cobra.Command, opts *options, whitelistPath, historyDir string, logOutput io.Writer) error {
	logger := utils.SetupLogger(logOutput, "filter", opts.debug, opts.logJSON)
	logger.Debug("Init filter", "version", version)

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		logger.Error("Could not load config", "error", err)
		return err
	}
	if opts.ofacFile != "" {
		cfg.Filter.SanctionsFile = opts.ofacFile
	}
	if opts.metricsFile != "" {
		cfg.Filter.MetricsFile = opts.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		return err
	}

	job := allowlist.NewJob(whitelistPath, historyDir, cfg.Filter, logger, metrics.NewRecorder())
	report, err := job.Run()
	if err != nil {
		logger.Error("Filter failed", "whitelist", whitelistPath, "error", err)
		return err
	}

	printSummary(cmd.OutOrStdout(), report)
	return nil
}

func printSummary(w io.Writer, report *allowlist.Report) {
	s := report.Summary
	fmt.Fprintf(w, "Total addresses:   %d\n", s.Total)
	fmt.Fprintf(w, "Accepted:          %d -> %s\n", s.Accepted, report.Destination.Accepted)
	fmt.Fprintf(w, "Rejected:          %d -> %s\n", s.Rejected, report.Destination.Removed)
	for _, reason := range types.Reasons {
		fmt.Fprintf(w, "  %-29s %d\n", reason+":", s.ByReason[reason])
	}
}

func main() {
	if err := newCommand(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
