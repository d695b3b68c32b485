package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kahu-tools/passtree/internal/audit"
	perrors "github.com/kahu-tools/passtree/internal/errors"
	"github.com/kahu-tools/passtree/internal/store"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var (
	generateNoSymbols bool
	generateForce     bool
	generateInPlace   bool

	generateCmd = &cobra.Command{
		Use:   "generate <name> [length]",
		Short: "Generate a new password and store it",
		Long: `Generates a random password of the given length (default ` +
			strconv.Itoa(store.DefaultPasswordLength) + `), stores it
encrypted, and prints it. With --in-place, only the first line of an
existing secret is replaced and the remaining lines are kept.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			length := 0
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n <= 0 {
					return Logger.ErrorfAndReturn("invalid length %q", args[1])
				}
				length = n
			}

			st, _, err := openStore()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to open store: %v", err)
			}
			if !st.IsInit() {
				fmt.Println(notInitializedMessage())
				return nil
			}

			password, err := st.Generate(name, store.GenerateOptions{
				Length:    length,
				NoSymbols: generateNoSymbols,
				Force:     generateForce,
				InPlace:   generateInPlace,
			})
			if errors.Is(err, perrors.ErrAlreadyExists) {
				fmt.Println(ui.Error.Sprint("✗") + " " + ui.Secret.Sprint(name) + " already exists\n" +
					ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("--force") + " to overwrite it, or " +
					ui.Code.Sprint("--in-place") + " to replace just the password line")
				return nil
			}
			if err != nil {
				return Logger.ErrorfAndReturn("failed to generate password for %s: %v", name, err)
			}

			entry := audit.NewEntry("generate")
			entry.Secret = name
			entry.Length = len(password)
			audit.Log(st.Root(), entry)

			fmt.Println("The generated password for " + ui.Secret.Sprint(name) + " is:")
			fmt.Println(ui.Match.Sprint(password))
			return nil
		},
	}
)

func init() {
	generateCmd.Flags().BoolVarP(&generateNoSymbols, "no-symbols", "n", false, "use alphanumeric characters only")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite an existing secret")
	generateCmd.Flags().BoolVarP(&generateInPlace, "in-place", "i", false, "replace only the first line of an existing secret")
}
