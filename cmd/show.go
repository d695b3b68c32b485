package cmd

import (
	"errors"
	"fmt"
	"path"

	perrors "github.com/kahu-tools/passtree/internal/errors"
	"github.com/kahu-tools/passtree/internal/store"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Decrypt and print a secret, or list a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open store: %v", err)
		}
		if !st.IsInit() {
			fmt.Println(notInitializedMessage())
			return nil
		}

		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		// A directory name lists its contents instead of decrypting.
		if name == "" || st.IsDir(name) {
			return printTree(st, name)
		}

		content, err := st.Get(name)
		if err != nil {
			if errors.Is(err, perrors.ErrNotFound) {
				fmt.Println(ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(name) + " is not in the password store")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to decrypt %s: %v", name, err)
		}
		fmt.Print(ui.EnsureNewline(content))
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls [directory]",
	Short: "List the secrets under a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open store: %v", err)
		}
		if !st.IsInit() {
			fmt.Println(notInitializedMessage())
			return nil
		}

		dir := ""
		if len(args) > 0 {
			dir = args[0]
		}
		return printTree(st, dir)
	},
}

// printTree renders the subtree under dir with indentation matching the
// directory depth.
func printTree(st *store.Store, dir string) error {
	if dir == "" {
		fmt.Println(ui.Directory.Sprint("Password Store"))
	} else {
		fmt.Println(ui.Directory.Sprint(dir))
	}
	return printTreeLevel(st, dir, "  ")
}

func printTreeLevel(st *store.Store, dir, indent string) error {
	dirs, secrets, err := st.ListChildren(dir)
	if err != nil {
		if errors.Is(err, perrors.ErrNotFound) {
			fmt.Println(ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(dir) + " is not in the password store")
			return nil
		}
		return err
	}

	for _, d := range dirs {
		fmt.Println(indent + ui.Directory.Sprint(path.Base(d)) + "/")
		if err := printTreeLevel(st, d, indent+"  "); err != nil {
			return err
		}
	}
	for _, s := range secrets {
		fmt.Println(indent + path.Base(s))
	}
	return nil
}
