package cmd

import (
	"fmt"

	"github.com/kahu-tools/passtree/internal/gpg"
	"github.com/kahu-tools/passtree/internal/history"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Manage the store's git history",
}

var gitInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a git repository for the store and record its contents",
	Long: `Creates a git repository at the store root, commits the current
contents, and configures gpg-aware diffs so that git log and git diff
show decrypted changes instead of binary noise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, config, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open store: %v", err)
		}
		if !st.IsInit() {
			fmt.Println(notInitializedMessage())
			return nil
		}
		if st.HasHistory() {
			fmt.Println(ui.Warning.Sprint("⚠") + " The store already has a git repository")
			return nil
		}

		git, err := history.Init(config.GitBin, st.Root())
		if err != nil {
			return Logger.ErrorfAndReturn("failed to create git repository: %v", err)
		}

		if err := st.InitHistory(git); err != nil {
			return Logger.ErrorfAndReturn("failed to record store contents: %v", err)
		}

		crypter := gpg.New(config.GPGBin, config.UseAgent)
		if err := git.Config("diff.gpg.binary", "true"); err != nil {
			Logger.Warnf("Failed to configure gpg diff: %v", err)
		}
		if err := git.Config("diff.gpg.textconv", crypter.DecryptCommand()); err != nil {
			Logger.Warnf("Failed to configure gpg diff: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Created git repository at " + ui.Path.Sprint(st.Root()))
		return nil
	},
}

func init() {
	gitCmd.AddCommand(gitInitCmd)
}
