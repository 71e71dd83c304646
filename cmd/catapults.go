package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diffsec/catapult/internal/snapshot"
)

var catapultsCmd = &cobra.Command{
	Use:   "catapults",
	Short: "Inspect or clear persisted catapult bucket snapshots",
}

var (
	catapultsShowDBPath  string
	catapultsShowRunID   string
	catapultsShowSig     uint64
	catapultsClearDBPath string
)

var catapultsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a persisted catapult bucket snapshot for a run",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := snapshot.Open(catapultsShowDBPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}
		defer func() { _ = store.Close() }()

		snap, err := store.GetCatapultSnapshot(catapultsShowRunID, catapultsShowSig)
		if err != nil {
			exitErrorJSON(err)
			return
		}

		output(snap, func(data interface{}) string {
			s := data.(*snapshot.CatapultSnapshot)
			return fmt.Sprintf("run=%s signature=%d nodes=%v\n", s.RunID, s.Signature, s.Nodes)
		})
	},
}

var catapultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all persisted catapult bucket snapshots from a snapshot database",
	Long: `A live graph's in-memory catapult buckets are reset by Graph.ClearAllCatapults
at the start of each sweep configuration. This command instead clears the
offline record of past bucket contents kept in the snapshot database, so a
fresh "catapults show" after a re-run reflects only the new state.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := snapshot.Open(catapultsClearDBPath)
		if err != nil {
			exitErrorJSON(err)
			return
		}
		defer func() { _ = store.Close() }()

		if err := store.ClearCatapultSnapshots(); err != nil {
			exitErrorJSON(err)
			return
		}

		output(map[string]string{"status": "cleared"}, func(data interface{}) string {
			return "cleared all persisted catapult snapshots\n"
		})
	},
}

func init() {
	catapultsShowCmd.Flags().StringVar(&catapultsShowDBPath, "db", "catapult-runs.db", "path to the sweep history SQLite database")
	catapultsShowCmd.Flags().StringVar(&catapultsShowRunID, "run", "", "run id to show (required)")
	catapultsShowCmd.Flags().Uint64Var(&catapultsShowSig, "signature", 0, "LSH bucket signature to show")
	_ = catapultsShowCmd.MarkFlagRequired("run")

	catapultsClearCmd.Flags().StringVar(&catapultsClearDBPath, "db", "catapult-runs.db", "path to the sweep history SQLite database")

	catapultsCmd.AddCommand(catapultsShowCmd)
	catapultsCmd.AddCommand(catapultsClearCmd)
	rootCmd.AddCommand(catapultsCmd)
}
