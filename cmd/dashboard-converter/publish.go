package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dashboard-converter/internal/publish"
	"dashboard-converter/node"
)

var publishFlags struct {
	folderUID string
	overwrite bool
}

var publishCmd = &cobra.Command{
	Use:   "publish <dashboard.json>...",
	Short: "Upload dashboards to Grafana",
	Long: `Uploads dashboards through the Grafana HTTP API.

The server and credentials are read from GRAFANA_URL, GRAFANA_USER and GRAFANA_PW.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishFlags.folderUID, "folder-uid", "", "folder the dashboards are stored in")
	publishCmd.Flags().BoolVar(&publishFlags.overwrite, "overwrite", false, "replace existing dashboards")
}

func runPublish(cmd *cobra.Command, args []string) error {
	config, err := publish.ConfigFromEnv()
	if err != nil {
		return err
	}

	config.FolderUID = publishFlags.folderUID
	config.Overwrite = publishFlags.overwrite

	client, err := publish.New(config, nil)
	if err != nil {
		return err
	}

	failed := 0

	for _, path := range args {
		doc, err := node.ReadFile(path)
		if err != nil {
			logger.Error("Cannot read dashboard", zap.String("file", path), zap.Error(err))
			failed++

			continue
		}

		res, err := client.Publish(cmd.Context(), doc)
		if err != nil {
			logger.Error("Upload failed", zap.String("file", path), zap.Error(err))
			failed++

			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s version %d at %s\n", path, res.Status, res.Version, res.URL)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d dashboards not published", failed, len(args))
	}

	return nil
}
