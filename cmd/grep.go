package cmd

import (
	"fmt"
	"sort"

	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var grepCmd = &cobra.Command{
	Use:   "grep <pattern>",
	Short: "Search decrypted secret contents for a pattern",
	Long: `Decrypts every secret in the store and matches each line of its
content against the pattern, a regular expression. Matching lines are
printed grouped by secret with the matching span highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open store: %v", err)
		}
		if !st.IsInit() {
			fmt.Println(notInitializedMessage())
			return nil
		}

		spinner, cleanup := startSpinner("Decrypting and searching...")
		defer cleanup()

		results, err := st.Search(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("search failed: %v", err)
		}

		if len(results) == 0 {
			spinner.FinalMSG = ui.Muted.Sprint("no matches")
			return nil
		}

		keys := make([]string, 0, len(results))
		for key := range results {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var out string
		for _, key := range keys {
			out += ui.Secret.Sprint(key) + ":\n"
			for _, match := range results[key] {
				line := match.Line[:match.Start] +
					ui.Match.Sprint(match.Line[match.Start:match.End]) +
					match.Line[match.End:]
				out += "  " + line + "\n"
			}
		}
		spinner.FinalMSG = out
		return nil
	},
}
