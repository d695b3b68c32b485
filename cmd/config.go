package cmd

import (
	"fmt"
	"os"

	"github.com/kahu-tools/passtree/internal/configs"
	"github.com/kahu-tools/passtree/internal/ui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage passtree configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configs.Load()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		configPath, err := configs.ConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to locate config: %v", err)
		}

		source := ui.Muted.Sprint("defaults")
		if _, err := os.Stat(configPath); err == nil {
			source = ui.Path.Sprint(configPath)
		}

		fmt.Println("Configuration " + ui.Muted.Sprint("from ") + source)
		fmt.Println("  store_dir: " + ui.Path.Sprint(config.StoreDir))
		fmt.Println("  gpg_bin:   " + config.GPGBin)
		fmt.Println("  git_bin:   " + config.GitBin)
		fmt.Printf("  use_agent: %t\n", config.UseAgent)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configs.Load()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		if err := configs.Save(config); err != nil {
			return Logger.ErrorfAndReturn("failed to save config: %v", err)
		}

		configPath, err := configs.ConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to locate config: %v", err)
		}
		fmt.Println(ui.Success.Sprint("✓") + " Wrote " + ui.Path.Sprint(configPath))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
