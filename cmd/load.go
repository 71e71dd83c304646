package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loadGraphPath   string
	loadPayloadPath string
	loadConfigPath  string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a graph/payload file pair and report its size",
	Long:  `Validates a graph file and payload file against each other and against the configured lane count, then reports the node count.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(loadConfigPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		g, err := loadGraph(loadGraphPath, loadPayloadPath, cfg)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		result := map[string]interface{}{
			"nodes":      g.Len(),
			"graph_path": loadGraphPath,
		}

		output(result, func(data interface{}) string {
			m := data.(map[string]interface{})
			return fmt.Sprintf("Loaded graph with %d nodes from %s\n", m["nodes"], m["graph_path"])
		})
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadGraphPath, "graph", "", "path to the graph metadata file (required)")
	loadCmd.Flags().StringVar(&loadPayloadPath, "payload", "", "path to the graph payload file (required)")
	loadCmd.Flags().StringVar(&loadConfigPath, "config", "", "path to an engine config YAML file (optional, defaults are used otherwise)")
	_ = loadCmd.MarkFlagRequired("graph")
	_ = loadCmd.MarkFlagRequired("payload")

	rootCmd.AddCommand(loadCmd)
}
