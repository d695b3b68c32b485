package cmd

import (
	"strings"

	"github.com/kahu-tools/passtree/internal/audit"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var (
	initPath   string
	initRemove bool

	initCmd = &cobra.Command{
		Use:   "init <gpg-id>...",
		Short: "Initialize the store or a subdirectory with encryption identities",
		Long: `Binds the store root, or the subdirectory given with --path, to the
listed GPG identities. Existing secrets under the directory are
re-encrypted against the new identities. With --remove, the binding is
deleted instead and the parent directory's identities take over.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !initRemove {
				return Logger.ErrorfAndReturn("at least one gpg-id is required (or --remove)")
			}
			if len(args) > 0 && initRemove {
				return Logger.ErrorfAndReturn("--remove takes no gpg-id arguments")
			}

			st, _, err := openStore()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to open store: %v", err)
			}

			spinner, cleanup := startSpinner("Re-encrypting secrets...")
			defer cleanup()

			if err := st.SetScope(args, initPath); err != nil {
				Logger.Errorf("Failed to set encryption identities: %v", err)
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}

			entry := audit.NewEntry("init")
			entry.Directory = initPath
			entry.Identities = args
			audit.Log(st.Root(), entry)

			target := initPath
			if target == "" {
				target = st.Root()
			}
			if initRemove {
				spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed encryption identities from " +
					ui.Path.Sprint(target)
			} else {
				spinner.FinalMSG = ui.Success.Sprint("✓") + " Password store initialized for " +
					ui.Identity.Sprint(strings.Join(args, ", ")) + " at " + ui.Path.Sprint(target)
			}
			return nil
		},
	}
)

func init() {
	initCmd.Flags().StringVarP(&initPath, "path", "p", "", "subdirectory to bind instead of the store root")
	initCmd.Flags().BoolVar(&initRemove, "remove", false, "remove the identity binding instead of setting one")
}
