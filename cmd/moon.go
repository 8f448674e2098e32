package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"cosmos-newsdesk/internal/moon"

	"github.com/spf13/cobra"
)

var moonAt string

// moonCmd prints the lunar phase as JSON.
var moonCmd = &cobra.Command{
	Use:   "moon",
	Short: "Print the lunar phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := moon.Now()
		if moonAt != "" {
			t, err := time.Parse(time.RFC3339, moonAt)
			if err != nil {
				return fmt.Errorf("invalid --at timestamp: %w", err)
			}
			p = moon.At(t)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

func init() {
	moonCmd.Flags().StringVar(&moonAt, "at", "", "compute the phase for an RFC3339 instant instead of now")
	rootCmd.AddCommand(moonCmd)
}
