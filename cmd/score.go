package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var scoreTitle string

// scoreCmd scores a text without touching the store. Useful for tuning
// weights and thresholds.
var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score a text for fake-news likelihood",
	Long:  "Scores the given text (or stdin when omitted) and prints the verdict as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		clf, err := buildClassifier(cfg.Moderation)
		if err != nil {
			return err
		}

		var body string
		if len(args) == 1 {
			body = args[0]
		} else {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			body = string(b)
		}

		score := clf.Score(scoreTitle, body)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"score":     score,
			"threshold": cfg.Moderation.Threshold,
			"accepted":  score <= cfg.Moderation.Threshold,
		})
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreTitle, "title", "", "optional title scored together with the body")
	rootCmd.AddCommand(scoreCmd)
}
