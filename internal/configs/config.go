package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds user-level settings for the password store.
type Config struct {
	// StoreDir is the root of the password store.
	StoreDir string `toml:"store_dir"`

	// GPGBin is the gpg binary to invoke for encryption and decryption.
	GPGBin string `toml:"gpg_bin"`

	// GitBin is the git binary to invoke for store history.
	GitBin string `toml:"git_bin"`

	// UseAgent runs gpg in batch mode against a persistent agent.
	UseAgent bool `toml:"use_agent"`
}

// DefaultConfig returns a Config with the conventional defaults.
func DefaultConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &Config{
		StoreDir: filepath.Join(homeDir, ".password-store"),
		GPGBin:   "gpg",
		GitBin:   "git",
		UseAgent: true,
	}, nil
}

// ConfigPath returns the path to the user's passtree config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "passtree", "config.toml"), nil
}

// Load reads the user configuration, applying defaults for anything not
// set. A missing config file is not an error. The PASSWORD_STORE_DIR
// environment variable overrides the configured store directory, for
// compatibility with other password store implementations.
func Load() (*Config, error) {
	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := LoadTOML(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if dir := os.Getenv("PASSWORD_STORE_DIR"); dir != "" {
		config.StoreDir = dir
	}

	// Fill back any field the config file cleared.
	defaults, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if config.StoreDir == "" {
		config.StoreDir = defaults.StoreDir
	}
	if config.GPGBin == "" {
		config.GPGBin = defaults.GPGBin
	}
	if config.GitBin == "" {
		config.GitBin = defaults.GitBin
	}

	return config, nil
}

// Save writes the user configuration to the config file.
func Save(config *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
