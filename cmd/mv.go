package cmd

import (
	"errors"
	"fmt"

	"github.com/kahu-tools/passtree/internal/audit"
	perrors "github.com/kahu-tools/passtree/internal/errors"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var (
	mvForce bool

	mvCmd = &cobra.Command{
		Use:   "mv <old-name> <new-name>",
		Short: "Move a secret or directory within the store",
		Long: `Relocates a secret or a whole directory. The moved entries are
re-encrypted when the destination falls under different encryption
identities. A trailing slash on the destination places the entry inside
that directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]

			st, _, err := openStore()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to open store: %v", err)
			}
			if !st.IsInit() {
				fmt.Println(notInitializedMessage())
				return nil
			}

			spinner, cleanup := startSpinner("Moving and re-encrypting...")
			defer cleanup()

			err = st.Move(oldName, newName, mvForce)
			if errors.Is(err, perrors.ErrNotFound) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(oldName) + " is not in the password store"
				return nil
			}
			if errors.Is(err, perrors.ErrAlreadyExists) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Destination already exists\n" +
					ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("--force") + " to overwrite it"
				return nil
			}
			if err != nil {
				return Logger.ErrorfAndReturn("failed to move %s: %v", oldName, err)
			}

			entry := audit.NewEntry("move")
			entry.Secret = oldName
			entry.Destination = newName
			audit.Log(st.Root(), entry)

			spinner.FinalMSG = ui.Success.Sprint("✓") + " Moved " + ui.Secret.Sprint(oldName) +
				" to " + ui.Secret.Sprint(newName)
			return nil
		},
	}
)

func init() {
	mvCmd.Flags().BoolVarP(&mvForce, "force", "f", false, "overwrite an existing destination")
}
