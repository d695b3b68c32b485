package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kahu-tools/passtree/internal/audit"
	perrors "github.com/kahu-tools/passtree/internal/errors"
	"github.com/kahu-tools/passtree/internal/store"
	"github.com/kahu-tools/passtree/internal/ui"
	"github.com/kahu-tools/passtree/internal/utils"

	"github.com/spf13/cobra"
)

var (
	rmRecursive bool
	rmForce     bool

	rmCmd = &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a secret or directory from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			st, _, err := openStore()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to open store: %v", err)
			}
			if !st.IsInit() {
				fmt.Println(notInitializedMessage())
				return nil
			}

			if !rmForce && utils.IsTerminal() {
				fmt.Printf("Are you sure you would like to delete %s? [y/N] ", ui.Secret.Sprint(name))
				var answer string
				_, _ = fmt.Scanln(&answer)
				if !strings.HasPrefix(strings.ToLower(answer), "y") {
					return nil
				}
			}

			err = st.Remove(name, store.RemoveOptions{Recursive: rmRecursive})
			if errors.Is(err, perrors.ErrNotFound) {
				fmt.Println(ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(name) + " is not in the password store")
				return nil
			}
			if errors.Is(err, perrors.ErrDirectoryNotEmpty) {
				fmt.Println(ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(name) + " is a non-empty directory\n" +
					ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("--recursive") + " to remove it with its contents")
				return nil
			}
			if err != nil {
				return Logger.ErrorfAndReturn("failed to remove %s: %v", name, err)
			}

			entry := audit.NewEntry("remove")
			entry.Secret = name
			entry.Recursive = rmRecursive
			audit.Log(st.Root(), entry)

			fmt.Println(ui.Success.Sprint("✓") + " Removed " + ui.Secret.Sprint(name))
			return nil
		},
	}
)

func init() {
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "remove directories and their contents")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "skip the confirmation prompt")
}
