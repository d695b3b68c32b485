package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// EffectiveIdentities resolves the identity set that applies to the
// named secret by walking ancestors from the secret's containing
// directory up to the store root until a .gpg-id file is found. Nested
// scopes can differ from their parents, so re-encryption must call
// this per secret.
func (s *Store) EffectiveIdentities(name string) ([]string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	// The scope comes from the secret's containing directory. A
	// directory sharing the secret's name must not contribute its own
	// identities, so the name is never probed as a directory.
	dir := filepath.Dir(path)
	if path == s.root {
		dir = s.root
	}

	for {
		ids, err := readScopeFile(filepath.Join(dir, scopeName))
		if err == nil && len(ids) > 0 {
			return ids, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if dir == s.root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, fmt.Errorf("%s: %w", name, perrors.ErrNotInitialized)
}

// readScopeFile reads a newline-separated identity list.
func readScopeFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids, nil
}

// SetScope binds the subtree rooted at dir to the given identities by
// writing its .gpg-id file, or removes the binding when identities is
// empty. Either way the whole subtree is re-encrypted against the new
// effective identity sets and the change is recorded in history.
func (s *Store) SetScope(identities []string, dir string) error {
	scopeDir, err := s.resolve(dir)
	if err != nil {
		return err
	}
	scopePath := filepath.Join(scopeDir, scopeName)

	if len(identities) == 0 {
		info, err := os.Stat(scopePath)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("%s: %w", s.logicalName(scopePath), perrors.ErrMissingIdentity)
		}
		if err := os.Remove(scopePath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", s.logicalName(scopePath), err)
		}
		s.stageRemove([]string{scopePath}, fmt.Sprintf("Deinitialize %s.", s.logicalName(scopePath)), true)

		// The store should not contain empty directories, so remove as
		// many as possible walking upward. The first non-empty
		// directory ends the climb.
		if err := s.pruneEmptyDirs(scopeDir); err != nil {
			return err
		}
	} else {
		if info, err := os.Stat(scopeDir); err == nil && !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, perrors.ErrPathConflict)
		}
		if err := os.MkdirAll(scopeDir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}

		// Other implementations require the identity list to be
		// newline terminated.
		data := strings.Join(identities, "\n") + "\n"
		// #nosec G306 -- identity lists are public metadata.
		if err := os.WriteFile(scopePath, []byte(data), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.logicalName(scopePath), err)
		}
		s.stageCommit([]string{scopePath}, fmt.Sprintf("Set GPG id to %s.", strings.Join(identities, ", ")))
	}

	if err := s.reencryptTree(scopeDir); err != nil {
		return err
	}
	s.stageCommit([]string{scopeDir},
		fmt.Sprintf("Reencrypt password store using new GPG id %s.", strings.Join(identities, ", ")))
	return nil
}

// reencryptTree decrypts and re-encrypts every secret under path
// against its current effective identities. Path may name a single
// encrypted file. The re-encryption is unconditional: any secret under
// a changed directory may have had its effective identity set altered,
// and under-re-encrypting risks leaving secrets readable by identities
// that should have lost access.
func (s *Store) reencryptTree(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		if strings.HasSuffix(path, secretSuffix) {
			return s.reencryptFile(path)
		}
		return nil
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), hiddenPrefix) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), secretSuffix) {
			return nil
		}
		return s.reencryptFile(p)
	})
}

func (s *Store) reencryptFile(path string) error {
	name := s.logicalName(path)

	identities, err := s.EffectiveIdentities(name)
	if err != nil {
		return err
	}

	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	plaintext, err := s.crypter.Decrypt(ciphertext)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	reencrypted, err := s.crypter.Encrypt(plaintext, identities)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if err := os.WriteFile(path, reencrypted, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	s.log.Debugf("Re-encrypted %s", name)
	return nil
}

// pruneEmptyDirs removes now-empty directories from dir upward, never
// crossing the store root. Only "directory not empty" failures end the
// climb silently; anything else propagates.
func (s *Store) pruneEmptyDirs(dir string) error {
	for dir != s.root {
		if err := os.Remove(dir); err != nil {
			if isNotEmpty(err) || os.IsNotExist(err) {
				return nil
			}
			return err
		}
		dir = filepath.Dir(dir)
	}
	return nil
}

func isNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)
}
