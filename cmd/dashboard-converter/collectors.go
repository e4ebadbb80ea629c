package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashboard-converter/internal/batch"
	"dashboard-converter/internal/mapping"
	"dashboard-converter/internal/processor"
	"dashboard-converter/internal/removal"
	"dashboard-converter/options"
)

var collectorsFlags struct {
	config       string
	mode         string
	stripOnly    bool
	watch        bool
	copyOriginal bool
	include      []string
	exclude      []string
}

var collectorsCmd = &cobra.Command{
	Use:   "collectors <input> [output]",
	Short: "Convert dashboards for remote collectors",
	Long: `Converts the dashboards below <input> for the collectors of the mapping file.

Dashboards in merged folders get one global version querying every collector.
Dashboards in separate folders get one copy per collector.

Example:
  dashboard-converter collectors dashboards/ --config collectors.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCollectors,
}

func init() {
	f := collectorsCmd.Flags()
	f.StringVarP(&collectorsFlags.config, "config", "c", "", "mapping file (.json, .jsonc, .yaml or .toml)")
	f.StringVarP(&collectorsFlags.mode, "mode", "m", "collectors", "conversions: merged, per-collector or collectors")
	f.BoolVar(&collectorsFlags.stripOnly, "strip-only", false, "only strip the retired dimension, keeping file names")
	f.BoolVarP(&collectorsFlags.watch, "watch", "w", false, "convert again whenever an input changes")
	f.BoolVar(&collectorsFlags.copyOriginal, "copy-original", false, "also copy converted inputs to the output")
	f.StringSliceVar(&collectorsFlags.include, "include", nil, "glob patterns of dashboards to convert")
	f.StringSliceVar(&collectorsFlags.exclude, "exclude", nil, "glob patterns of dashboards to skip")

	_ = collectorsCmd.MarkFlagRequired("config")
}

func runCollectors(cmd *cobra.Command, args []string) error {
	table, err := mapping.Load(collectorsFlags.config)
	if err != nil {
		return err
	}

	modes, ok := options.ParseMode(collectorsFlags.mode)
	if !ok {
		return fmt.Errorf("invalid --mode %q", collectorsFlags.mode)
	}

	job := batch.Collectors(table, modes, logger)

	if collectorsFlags.stripOnly {
		rules, err := removal.ForDimension(table.Dimension())
		if err != nil {
			return err
		}

		job = batch.Pipeline(processor.Pipeline{rules.Run})
	}

	return runBatch(cmd, args, job, collectorsFlags.watch, batch.Config{
		CopyOriginal: collectorsFlags.copyOriginal,
		Include:      collectorsFlags.include,
		Exclude:      collectorsFlags.exclude,
	})
}

// runBatch runs job over the input and output of args, once or until
// interrupted.
func runBatch(cmd *cobra.Command, args []string, job batch.Job, watch bool, config batch.Config) error {
	config.Input = args[0]
	if len(args) > 1 {
		config.Output = args[1]
	}

	config.Logger = logger

	d, err := batch.New(config)
	if err != nil {
		return err
	}

	if watch {
		return d.Watch(cmd.Context(), job, batch.DefaultDebounce, func(s *batch.Summary, err error) {
			if err != nil {
				logger.Error(err.Error())
				return
			}

			_ = report(cmd, s)
		})
	}

	s, err := d.Run(cmd.Context(), job)
	if err != nil {
		return err
	}

	return report(cmd, s)
}
