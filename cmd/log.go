package cmd

import (
	"fmt"
	"strings"

	"github.com/kahu-tools/passtree/internal/audit"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the store's operation journal",
	Long: `Prints the journal of store operations. The journal records names and
timestamps only, never secret content, so it can be inspected without
any decryption keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open store: %v", err)
		}

		entries, err := audit.ReadEntries(st.Root())
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read journal: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println(ui.Muted.Sprint("journal is empty"))
			return nil
		}

		for _, entry := range entries {
			line := ui.Muted.Sprint(entry.Timestamp) + " " + entry.Operation
			switch {
			case entry.Destination != "":
				line += " " + ui.Secret.Sprint(entry.Secret) + " → " + ui.Secret.Sprint(entry.Destination)
			case entry.Secret != "":
				line += " " + ui.Secret.Sprint(entry.Secret)
			case len(entry.Identities) > 0:
				line += " " + ui.Identity.Sprint(strings.Join(entry.Identities, ", "))
				if entry.Directory != "" {
					line += " at " + ui.Path.Sprint(entry.Directory)
				}
			}
			fmt.Println(line)
		}
		return nil
	},
}
