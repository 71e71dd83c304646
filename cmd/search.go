package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diffsec/catapult/internal/loader"
	"github.com/diffsec/catapult/internal/statistics"
)

var (
	searchGraphPath   string
	searchPayloadPath string
	searchQueriesPath string
	searchConfigPath  string
	searchK           int
	searchBeamWidth   int
	searchCatapults   bool
)

type searchResultRow struct {
	QueryIndex int      `json:"query_index"`
	Nodes      []uint32 `json:"nodes"`
	Distances  []float32 `json:"distances"`
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run beam search for every query in a NumPy query file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(searchConfigPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}
		cfg.CatapultsEnabled = searchCatapults

		g, err := loadGraph(searchGraphPath, searchPayloadPath, cfg)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		queries, err := loader.LoadQueries(searchQueriesPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		var stats statistics.Stats
		rows := make([]searchResultRow, len(queries))
		for i, q := range queries {
			results := g.BeamSearch(q, searchK, searchBeamWidth, &stats)
			row := searchResultRow{QueryIndex: i}
			for _, r := range results {
				row.Nodes = append(row.Nodes, uint32(r.Node))
				row.Distances = append(row.Distances, r.Distance.Float32())
			}
			rows[i] = row
		}

		output(rows, func(data interface{}) string {
			rs := data.([]searchResultRow)
			var out string
			for _, r := range rs {
				out += fmt.Sprintf("query %d: nodes=%v distances=%v\n", r.QueryIndex, r.Nodes, r.Distances)
			}
			out += fmt.Sprintf("\n%d queries, %d nodes visited, %d distances computed\n",
				len(rs), stats.GetNodesVisited(), stats.GetComputedDists())
			return out
		})
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchGraphPath, "graph", "", "path to the graph metadata file (required)")
	searchCmd.Flags().StringVar(&searchPayloadPath, "payload", "", "path to the graph payload file (required)")
	searchCmd.Flags().StringVar(&searchQueriesPath, "queries", "", "path to the NumPy query file (required)")
	searchCmd.Flags().StringVar(&searchConfigPath, "config", "", "path to an engine config YAML file (optional)")
	searchCmd.Flags().IntVar(&searchK, "k", 10, "number of neighbors to return per query")
	searchCmd.Flags().IntVar(&searchBeamWidth, "beam-width", 20, "beam width for the search")
	searchCmd.Flags().BoolVar(&searchCatapults, "catapults", false, "enable catapult caching of start points")
	_ = searchCmd.MarkFlagRequired("graph")
	_ = searchCmd.MarkFlagRequired("payload")
	_ = searchCmd.MarkFlagRequired("queries")

	rootCmd.AddCommand(searchCmd)
}
