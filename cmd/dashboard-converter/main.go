// Package main provides the CLI entrypoint for dashboard-converter.
//
// dashboard-converter rewrites Grafana dashboard JSON:
//   - collectors: merges dashboards across remote collectors or copies them per collector
//   - application: retargets dashboards from one application grouping to the others
//   - generate: builds a dashboard from the measurement schema
//   - publish: uploads dashboards to Grafana
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dashboard-converter/internal/batch"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dashboard-converter",
	Short: "Rewrite Grafana dashboards for collectors and application groupings",
	Long: `dashboard-converter rewrites Grafana dashboard JSON files.

Input folders are converted into <input>/converted unless an output folder
is given; "." writes next to the inputs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(collectorsCmd, applicationCmd, generateCmd, publishCmd)
}

// report prints the summary of a batch run and turns its failures into
// the command's error.
func report(cmd *cobra.Command, s *batch.Summary) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d dashboards read, %d converted into %d outputs (%d written)\n",
		s.Documents, s.Converted, s.Outputs, s.Written)

	for _, w := range s.Diagnostics.Warnings {
		fmt.Fprintln(out, w.String())
	}

	for _, e := range s.Diagnostics.Errors {
		fmt.Fprintln(out, e.String())
	}

	if !s.Diagnostics.HasErrors() {
		return nil
	}

	if failed := s.Diagnostics.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d dashboards failed: %s", len(failed), strings.Join(failed, ", "))
	}

	return s.Diagnostics.Error()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
