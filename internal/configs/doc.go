// Package configs manages user configuration for passtree.
//
// Configuration is stored in TOML format at
// $XDG_CONFIG_HOME/passtree/config.toml and covers:
//
//   - store_dir: root of the password store (default ~/.password-store)
//   - gpg_bin:   gpg binary for the encryption backend (default "gpg")
//   - git_bin:   git binary for the history backend (default "git")
//   - use_agent: run gpg in batch mode against a persistent agent
//
// A missing config file means defaults apply. The PASSWORD_STORE_DIR
// environment variable overrides store_dir so that stores shared with
// other pass implementations resolve to the same location.
package configs
