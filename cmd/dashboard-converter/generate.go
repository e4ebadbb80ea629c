package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dashboard-converter/internal/gen"
	"dashboard-converter/internal/schema"
)

var generateFlags struct {
	schema     string
	metrics    []string
	label      string
	filter     string
	datasource string
	out        string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dashboard from the measurement schema",
	Long: `Builds a dashboard graphing the metrics of every measurement tagged with
the grouping label. With --filter the graphs are restricted to matching
values; otherwise the dashboard gets a variable selecting them.

Example:
  dashboard-converter generate --schema database.jsonc --label "Hosts Group" --metrics bytes,packets`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.schema, "schema", "s", "", "measurement schema file")
	f.StringSliceVar(&generateFlags.metrics, "metrics", []string{"bytes"}, "metrics to graph")
	f.StringVarP(&generateFlags.label, "label", "l", "", "grouping label")
	f.StringVarP(&generateFlags.filter, "filter", "f", "", "grouping value or CIDR to restrict the graphs to")
	f.StringVar(&generateFlags.datasource, "datasource", gen.DefaultGeneratorConfig().Datasource, "datasource the panels query")
	f.StringVarP(&generateFlags.out, "out", "o", ".", "output folder")

	_ = generateCmd.MarkFlagRequired("schema")
	_ = generateCmd.MarkFlagRequired("label")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	db, err := schema.Load(generateFlags.schema)
	if err != nil {
		return err
	}

	selected, missing := db.Select(generateFlags.metrics, generateFlags.label)
	if len(missing) > 0 {
		logger.Warn("Metrics not in the schema", zap.Strings("metrics", missing))
	}

	g, err := gen.NewGenerator(gen.GeneratorConfig{Datasource: generateFlags.datasource})
	if err != nil {
		return err
	}

	doc, err := g.Generate(gen.Request{
		Label:      generateFlags.label,
		Filter:     generateFlags.filter,
		Selections: selected,
	})
	if err != nil {
		return err
	}

	name := strings.Join(strings.Fields(strings.ToLower(generateFlags.label)), "_") + ".json"
	if _, err := gen.NewWriter(generateFlags.out).Write(name, doc); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "generated %s (uid %s)\n", name, doc.Get("uid").Text())

	return nil
}
