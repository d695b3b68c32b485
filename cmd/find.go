package cmd

import (
	"fmt"
	"strings"

	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <term>...",
	Short: "List secrets whose names match the given terms",
	Long: `Matches secret names against the given terms as substrings. A term
containing glob metacharacters (*, ?, [, {) is matched as a glob
pattern instead, with ** matching across directories.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open store: %v", err)
		}
		if !st.IsInit() {
			fmt.Println(notInitializedMessage())
			return nil
		}

		var keys []string
		if len(args) == 1 && strings.ContainsAny(args[0], "*?[{") {
			keys, err = st.Glob(args[0])
		} else {
			keys, err = st.Find(args)
		}
		if err != nil {
			return Logger.ErrorfAndReturn("search failed: %v", err)
		}

		if len(keys) == 0 {
			fmt.Println(ui.Muted.Sprint("no matches"))
			return nil
		}
		for _, key := range keys {
			fmt.Println(ui.Secret.Sprint(key))
		}
		return nil
	},
}
