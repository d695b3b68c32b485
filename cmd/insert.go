package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kahu-tools/passtree/internal/audit"
	perrors "github.com/kahu-tools/passtree/internal/errors"
	"github.com/kahu-tools/passtree/internal/store"
	"github.com/kahu-tools/passtree/internal/ui"
	"github.com/kahu-tools/passtree/internal/utils"

	"github.com/spf13/cobra"
)

var (
	insertForce     bool
	insertMultiline bool

	insertCmd = &cobra.Command{
		Use:   "insert <name>",
		Short: "Add a new secret to the store",
		Long: `Prompts for the secret without echoing and stores it encrypted. With
--multiline, all lines are read until EOF instead. Content may also be
piped on stdin.`,
		Args: cobra.ExactArgs(1),
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

			content, err := readSecretContent(name)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret: %v", err)
			}

			err = st.Set(name, content, store.SetOptions{Force: insertForce})
			if errors.Is(err, perrors.ErrAlreadyExists) {
				fmt.Println(ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(name) + " already exists\n" +
					ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("--force") + " to overwrite it")
				return nil
			}
			if err != nil {
				return Logger.ErrorfAndReturn("failed to store %s: %v", name, err)
			}

			entry := audit.NewEntry("insert")
			entry.Secret = name
			audit.Log(st.Root(), entry)

			fmt.Println(ui.Success.Sprint("✓") + " Stored " + ui.Secret.Sprint(name))
			return nil
		},
	}
)

// readSecretContent collects the secret content from the terminal or
// from piped stdin.
func readSecretContent(name string) (string, error) {
	if !utils.IsTerminal() {
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		content := string(data)
		if !insertMultiline {
			// Only the first line is the secret when piped without
			// --multiline, matching interactive behavior.
			content, _, _ = strings.Cut(content, "\n")
		}
		return content, nil
	}

	if insertMultiline {
		fmt.Printf("Enter contents of %s and press Ctrl+D when finished:\n", name)
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	secret, err := utils.ReadSecretConfirmed(
		fmt.Sprintf("Enter password for %s: ", name),
		fmt.Sprintf("Retype password for %s: ", name),
	)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func init() {
	insertCmd.Flags().BoolVarP(&insertForce, "force", "f", false, "overwrite an existing secret")
	insertCmd.Flags().BoolVarP(&insertMultiline, "multiline", "m", false, "read multiple lines until EOF")
}
