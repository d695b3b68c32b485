package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Point config discovery at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PASSWORD_STORE_DIR", "")

	config, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}
	if config.StoreDir != filepath.Join(homeDir, ".password-store") {
		t.Errorf("Expected default store dir, got: %s", config.StoreDir)
	}
	if config.GPGBin != "gpg" {
		t.Errorf("Expected default gpg binary, got: %s", config.GPGBin)
	}
	if config.GitBin != "git" {
		t.Errorf("Expected default git binary, got: %s", config.GitBin)
	}
	if !config.UseAgent {
		t.Error("Expected agent use by default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PASSWORD_STORE_DIR", "/tmp/other-store")

	config, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.StoreDir != "/tmp/other-store" {
		t.Errorf("Expected env override, got: %s", config.StoreDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("PASSWORD_STORE_DIR", "")

	saved := &Config{
		StoreDir: "/srv/secrets",
		GPGBin:   "gpg2",
		GitBin:   "git",
		UseAgent: false,
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.StoreDir != saved.StoreDir {
		t.Errorf("Expected store dir %s, got %s", saved.StoreDir, loaded.StoreDir)
	}
	if loaded.GPGBin != saved.GPGBin {
		t.Errorf("Expected gpg binary %s, got %s", saved.GPGBin, loaded.GPGBin)
	}
	if loaded.UseAgent {
		t.Error("Expected agent use disabled")
	}
}
