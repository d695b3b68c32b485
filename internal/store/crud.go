package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// SetOptions configures Set.
type SetOptions struct {
	// Force overwrites an existing secret.
	Force bool
}

// RemoveOptions configures Remove.
type RemoveOptions struct {
	// Recursive removes non-empty directories.
	Recursive bool
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	// Length of the generated password. Zero means DefaultPasswordLength.
	Length int

	// NoSymbols restricts the password to alphanumerics.
	NoSymbols bool

	// Force overwrites an existing secret.
	Force bool

	// InPlace replaces only the first line of an existing secret,
	// keeping the remaining lines unchanged.
	InPlace bool
}

// Get returns the decrypted content of the named secret. An empty name
// is a no-op returning empty content.
func (s *Store) Get(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if err := s.ensureInit(); err != nil {
		return "", err
	}

	keyPath, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	keyPath += secretSuffix

	info, err := os.Stat(keyPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", name, perrors.ErrNotFound)
	}

	ciphertext, err := os.ReadFile(keyPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	plaintext, err := s.crypter.Decrypt(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(plaintext), nil
}

// Set adds a secret to the store or, with Force, updates an existing
// one. The content is encrypted against the effective identities of the
// secret's directory. An empty name is a no-op.
func (s *Store) Set(name, content string, opts SetOptions) error {
	if name == "" {
		return nil
	}
	if err := s.ensureInit(); err != nil {
		return err
	}

	keyPath, err := s.resolve(name)
	if err != nil {
		return err
	}
	keyPath += secretSuffix

	if _, err := os.Stat(keyPath); err == nil && !opts.Force {
		return fmt.Errorf("%s: %w", name, perrors.ErrAlreadyExists)
	}

	if err := s.writeSecret(keyPath, content); err != nil {
		return err
	}
	s.stageCommit([]string{keyPath},
		fmt.Sprintf("Add given password for %s to store.", s.logicalName(keyPath)))
	return nil
}

// Remove deletes a secret or directory from the store. Directories are
// resolved first; a non-empty directory requires Recursive. A missing
// secret fails with ErrNotFound.
func (s *Store) Remove(name string, opts RemoveOptions) error {
	if err := s.ensureInit(); err != nil {
		return err
	}

	target, err := s.resolve(name)
	if err != nil {
		return err
	}

	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		if opts.Recursive {
			if err := os.RemoveAll(target); err != nil {
				return fmt.Errorf("failed to remove %s: %w", name, err)
			}
		} else {
			if err := os.Remove(target); err != nil {
				if isNotEmpty(err) {
					return fmt.Errorf("%s: %w", name, perrors.ErrDirectoryNotEmpty)
				}
				return fmt.Errorf("failed to remove %s: %w", name, err)
			}
		}
	} else {
		target += secretSuffix
		info, statErr := os.Stat(target)
		if statErr != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("%s: %w", name, perrors.ErrNotFound)
		}
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	if _, err := os.Stat(target); os.IsNotExist(err) {
		s.stageRemove([]string{target},
			fmt.Sprintf("Remove %s from store.", s.logicalName(target)), opts.Recursive)
	}
	return nil
}

// Generate writes a newly generated password as the named secret and
// returns it, so the caller can display it without a decryption round
// trip. With InPlace, only the first line of the existing secret is
// replaced and the remaining lines are kept verbatim.
func (s *Store) Generate(name string, opts GenerateOptions) (string, error) {
	if name == "" {
		return "", nil
	}
	if err := s.ensureInit(); err != nil {
		return "", err
	}

	keyPath, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	keyPath += secretSuffix

	_, statErr := os.Stat(keyPath)
	exists := statErr == nil

	if exists && !opts.Force && !opts.InPlace {
		return "", fmt.Errorf("%s: %w", name, perrors.ErrAlreadyExists)
	}

	length := opts.Length
	if length <= 0 {
		length = DefaultPasswordLength
	}
	password, err := GeneratePassword(length, !opts.NoSymbols)
	if err != nil {
		return "", err
	}

	action := "Add"
	if opts.InPlace {
		action = "Replace"
		if !exists {
			return "", fmt.Errorf("%s: %w", name, perrors.ErrNotFound)
		}
		content, err := s.Get(s.logicalName(keyPath))
		if err != nil {
			return "", err
		}
		lines := strings.Split(content, "\n")
		lines[0] = password
		if err := s.writeSecret(keyPath, strings.Join(lines, "\n")); err != nil {
			return "", err
		}
	} else {
		if err := s.writeSecret(keyPath, password); err != nil {
			return "", err
		}
	}

	s.stageCommit([]string{keyPath},
		fmt.Sprintf("%s generated password for %s.", action, s.logicalName(keyPath)))
	return password, nil
}

// writeSecret encrypts content against the effective identities of the
// secret's directory and writes the encrypted file, creating parent
// directories as needed.
func (s *Store) writeSecret(keyPath, content string) error {
	name := s.logicalName(keyPath)

	identities, err := s.EffectiveIdentities(name)
	if err != nil {
		return err
	}
	ciphertext, err := s.crypter.Encrypt([]byte(content), identities)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(keyPath, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
