package cmd

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/diffsec/catapult/internal/candidates"
	"github.com/diffsec/catapult/internal/loader"
	"github.com/diffsec/catapult/internal/numerics"
	"github.com/diffsec/catapult/internal/report"
	"github.com/diffsec/catapult/internal/search"
	"github.com/diffsec/catapult/internal/snapshot"
	"github.com/diffsec/catapult/internal/statistics"
)

// sweepBatchSize is the number of queries each worker goroutine claims at a
// time from the shared query set.
const sweepBatchSize = 4096

var (
	sweepGraphPath    string
	sweepPayloadPath  string
	sweepQueriesPath  string
	sweepConfigPath   string
	sweepDBPath       string
	sweepThreads      []int
	sweepBeamWidths   []int
	sweepNumNeighbors int
	sweepCatapults    bool
	sweepFormat       string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the cartesian product of thread counts and beam widths over a query set",
	Long: `Runs every combination of --threads x --beam-width against the query file,
clearing all catapult buckets between configurations, and persists one
RunRecord per configuration to the snapshot database.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(sweepConfigPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}
		cfg.CatapultsEnabled = sweepCatapults

		g, err := loadGraph(sweepGraphPath, sweepPayloadPath, cfg)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		queries, err := loader.LoadQueries(sweepQueriesPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		store, err := snapshot.Open(sweepDBPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}
		defer func() { _ = store.Close() }()

		liveProgress := isatty.IsTerminal(os.Stderr.Fd())

		var runs []snapshot.RunRecord
		for _, threads := range sweepThreads {
			for _, beamWidth := range sweepBeamWidths {
				g.ClearAllCatapults()

				if liveProgress {
					fmt.Fprintf(os.Stderr, "running threads=%d beam_width=%d...\n", threads, beamWidth)
				}

				record := runSweepJob(g, queries, threads, beamWidth, sweepNumNeighbors, sweepCatapults)
				runID, err := store.RecordRun(record)
				if err != nil {
					exitErrorJSON(err)
					return
				}
				record.RunID = runID
				runs = append(runs, record)

				if sweepCatapults {
					for sig, nodes := range g.CatapultBuckets() {
						snap := snapshot.CatapultSnapshot{RunID: runID, Signature: sig, Nodes: nodes}
						if err := store.RecordCatapultSnapshot(snap); err != nil {
							exitErrorJSON(err)
							return
						}
					}
				}
			}
		}

		switch sweepFormat {
		case "csv":
			data, err := report.CSV(runs)
			if err != nil {
				exitErrorJSON(err)
				return
			}
			os.Stdout.Write(data)
		case "html":
			os.Stdout.Write(report.HTML(runs))
		case "json":
			if err := outputJSON(runs); err != nil {
				exitErrorJSON(err)
			}
		default:
			fmt.Print(report.Text(runs))
		}
	},
}

// runSweepJob runs one (threads, beamWidth) configuration over the full
// query set: queries are split into fixed-size batches atomically claimed
// by worker goroutines, each merging its own Stats into the combined total
// once the query set is exhausted.
func runSweepJob(g *search.Graph, queries [][]numerics.AlignedBlock, threads, beamWidth, numNeighbors int, catapultsEnabled bool) snapshot.RunRecord {
	numQueries := len(queries)
	var nextBatch atomic.Int64
	bestNodes := make([]candidates.NodeId, numQueries)

	var wg sync.WaitGroup
	statsCh := make(chan *statistics.Stats, threads)

	start := time.Now()
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var localStats statistics.Stats
			for {
				batchStart := int(nextBatch.Add(sweepBatchSize) - sweepBatchSize)
				if batchStart >= numQueries {
					break
				}
				batchEnd := batchStart + sweepBatchSize
				if batchEnd > numQueries {
					batchEnd = numQueries
				}
				for i := batchStart; i < batchEnd; i++ {
					results := g.BeamSearch(queries[i], numNeighbors, beamWidth, &localStats)
					bestNodes[i] = results[0].Node
				}
			}
			statsCh <- &localStats
		}()
	}
	wg.Wait()
	close(statsCh)

	combined := &statistics.Stats{}
	for s := range statsCh {
		combined = combined.Merge(s)
	}
	elapsed := time.Since(start)

	var checksum uint64
	for _, n := range bestNodes {
		checksum += uint64(n)
	}

	record := snapshot.RunRecord{
		Threads:      threads,
		BeamWidth:    beamWidth,
		NumNeighbors: numNeighbors,
		NumQueries:   numQueries,
		Checksum:     checksum,
		QPS:          float64(numQueries) / elapsed.Seconds(),
	}
	if numQueries > 0 {
		record.AvgDistsComputed = float64(combined.GetComputedDists()) / float64(numQueries)
		record.AvgNodesVisited = float64(combined.GetNodesVisited()) / float64(numQueries)
		if catapultsEnabled {
			record.CatapultUsagePct = float64(combined.GetSearchesWithCatapults()) / float64(numQueries) * 100.0
		}
	}
	return record
}

func init() {
	sweepCmd.Flags().StringVar(&sweepGraphPath, "graph", "", "path to the graph metadata file (required)")
	sweepCmd.Flags().StringVar(&sweepPayloadPath, "payload", "", "path to the graph payload file (required)")
	sweepCmd.Flags().StringVar(&sweepQueriesPath, "queries", "", "path to the NumPy query file (required)")
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "path to an engine config YAML file (optional)")
	sweepCmd.Flags().StringVar(&sweepDBPath, "db", "catapult-runs.db", "path to the sweep history SQLite database")
	sweepCmd.Flags().IntSliceVar(&sweepThreads, "threads", []int{1}, "comma-separated list of thread counts")
	sweepCmd.Flags().IntSliceVar(&sweepBeamWidths, "beam-width", []int{20}, "comma-separated list of beam widths")
	sweepCmd.Flags().IntVar(&sweepNumNeighbors, "num-neighbors", 10, "number of neighbors to return per query")
	sweepCmd.Flags().BoolVar(&sweepCatapults, "catapults", false, "enable catapult caching of start points")
	sweepCmd.Flags().StringVar(&sweepFormat, "format", "text", "output format: text, csv, html, or json")
	_ = sweepCmd.MarkFlagRequired("graph")
	_ = sweepCmd.MarkFlagRequired("payload")
	_ = sweepCmd.MarkFlagRequired("queries")

	rootCmd.AddCommand(sweepCmd)
}
