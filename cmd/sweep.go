package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmos-newsdesk/internal/media"

	"github.com/spf13/cobra"
)

// sweepCmd runs a single purge pass and prints the result as JSON.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Purge stored news items over the fake-score threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		mediaStore, err := media.NewStore(cfg.Media.UploadDir)
		if err != nil {
			return err
		}

		policy, err := buildPolicy(cfg, store, mediaStore)
		if err != nil {
			return err
		}

		rep, err := policy.SweepAndPurge(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range rep.Failures {
			fmt.Fprintf(os.Stderr, "failed to purge item %d: %v\n", f.ID, f.Err)
		}

		purged := rep.PurgedIDs
		if purged == nil {
			purged = []int64{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"purged_count": rep.Purged(),
			"purged_ids":   purged,
			"failed":       len(rep.Failures),
		})
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
