package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/kahu-tools/passtree/internal/configs"
	"github.com/kahu-tools/passtree/internal/gpg"
	"github.com/kahu-tools/passtree/internal/history"
	"github.com/kahu-tools/passtree/internal/store"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/briandowns/spinner"
)

// openStore loads the user configuration and assembles a store over the
// configured directory, with git history attached when the store
// directory is already a repository.
func openStore() (*store.Store, *configs.Config, error) {
	config, err := configs.Load()
	if err != nil {
		return nil, nil, err
	}
	Logger.Debugf("Store directory: %s", config.StoreDir)

	crypter := gpg.New(config.GPGBin, config.UseAgent)
	git := history.Detect(config.GitBin, config.StoreDir)
	if git != nil {
		Logger.Debugf("Detected git repository at %s", config.StoreDir)
	}

	opts := store.Options{
		Root:    config.StoreDir,
		Crypter: crypter,
		Verbose: verbose,
		Debug:   debug,
	}
	// A nil interface must stay nil; assigning a nil *Git directly
	// would produce a non-nil interface value.
	if git != nil {
		opts.History = git
	}

	st, err := store.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return st, config, nil
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// notInitializedMessage is the shared final message for commands that
// require an initialized store.
func notInitializedMessage() string {
	return ui.Error.Sprint("✗") + " Password store is not initialized\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("passtree init <gpg-id>") + " first"
}
