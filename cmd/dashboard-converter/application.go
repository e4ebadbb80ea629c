package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dashboard-converter/internal/application"
	"dashboard-converter/internal/batch"
)

var applicationFlags struct {
	key   string
	watch bool
}

var applicationCmd = &cobra.Command{
	Use:   "application <input> [output]",
	Short: "Retarget dashboards to the other application groupings",
	Long: `Rewrites dashboards built for one application grouping (--key) into one
dashboard per other grouping.

Keys: ` + strings.Join(application.DefaultRegistry().Keys(), ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := application.New(nil)
		if !r.Registry().Has(applicationFlags.key) {
			return fmt.Errorf("unknown --key %q, expected one of %s",
				applicationFlags.key, strings.Join(r.Registry().Keys(), ", "))
		}

		return runBatch(cmd, args, batch.Application(r, applicationFlags.key), applicationFlags.watch, batch.Config{})
	},
}

func init() {
	applicationCmd.Flags().StringVarP(&applicationFlags.key, "key", "k", application.KeyHostsGroup, "application grouping of the input dashboards")
	applicationCmd.Flags().BoolVarP(&applicationFlags.watch, "watch", "w", false, "convert again whenever an input changes")
}
