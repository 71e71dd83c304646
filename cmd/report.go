package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diffsec/catapult/internal/report"
	"github.com/diffsec/catapult/internal/snapshot"
)

var (
	reportDBPath     string
	reportFormat     string
	reportOutputPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the persisted sweep history as text, CSV, or HTML",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := snapshot.Open(reportDBPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}
		defer func() { _ = store.Close() }()

		runs, err := store.ListRuns()
		if err != nil {
			exitErrorJSON(err)
			return
		}

		var data []byte
		switch reportFormat {
		case "csv":
			data, err = report.CSV(runs)
			if err != nil {
				exitErrorJSON(err)
				return
			}
		case "html":
			data = report.HTML(runs)
		case "json":
			if reportOutputPath == "" {
				if err := outputJSON(runs); err != nil {
					exitErrorJSON(err)
				}
				return
			}
			data, err = json.MarshalIndent(runs, "", "  ")
			if err != nil {
				exitErrorJSON(fmt.Errorf("marshaling report: %w", err))
				return
			}
		default:
			data = []byte(report.Text(runs))
		}

		if reportOutputPath == "" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(reportOutputPath, data, 0644); err != nil {
			exitErrorJSON(fmt.Errorf("writing report: %w", err))
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDBPath, "db", "catapult-runs.db", "path to the sweep history SQLite database")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text, csv, html, or json")
	reportCmd.Flags().StringVar(&reportOutputPath, "output", "", "write the report to this file instead of stdout")

	rootCmd.AddCommand(reportCmd)
}
