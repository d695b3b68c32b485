package cmd

import (
	"fmt"

	logger "github.com/kahu-tools/passtree/internal/logging"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "passtree",
		Short: "passtree - A hierarchical encrypted password store",
		Long: `passtree stores each secret as an individually encrypted file in a
directory tree, compatible with the standard password store layout.

Features:
  - One encrypted .gpg file per secret, organized in directories
  - Per-directory encryption identities with automatic re-encryption
  - Optional git history recording every change
  - Search across names and decrypted content

Run 'passtree help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing passtree with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewFigure("passtree", "", true)
			banner.Print()
			fmt.Println("Run 'passtree --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(lsCmd)
	RootCmd.AddCommand(insertCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(mvCmd)
	RootCmd.AddCommand(cpCmd)
	RootCmd.AddCommand(findCmd)
	RootCmd.AddCommand(grepCmd)
	RootCmd.AddCommand(gitCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	insertForce = false
	insertMultiline = false
	generateNoSymbols = false
	generateForce = false
	generateInPlace = false
	rmRecursive = false
	rmForce = false
	mvForce = false
	cpForce = false
	initPath = ""
	initRemove = false
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the changed markers on every flag to
// prevent state leaking between test invocations.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
