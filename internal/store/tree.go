package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// ListChildren returns the directories and secrets one level below dir,
// both as logical names in lexicographic directory-entry order. Hidden
// entries and files without the secret suffix are excluded.
func (s *Store) ListChildren(dir string) (dirs, secrets []string, err error) {
	if err := s.ensureInit(); err != nil {
		return nil, nil, err
	}

	pathDir, err := s.resolve(dir)
	if err != nil {
		return nil, nil, err
	}

	entries, err := os.ReadDir(pathDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", dir, perrors.ErrNotFound)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		entryPath := filepath.Join(pathDir, name)
		if entry.IsDir() {
			dirs = append(dirs, s.logicalName(entryPath))
		} else if entry.Type().IsRegular() && strings.HasSuffix(name, secretSuffix) {
			secrets = append(secrets, s.logicalName(entryPath))
		}
	}
	return dirs, secrets, nil
}

// Walk visits every secret in the subtree rooted at dir in depth-first
// lexicographic order, calling fn with each logical name. Directories
// recurse before later siblings are visited; hidden entries are
// skipped; only secret files are yielded. A non-nil error from fn
// aborts the walk. Each call walks the tree afresh, so concurrent walks
// over an unchanged tree are safe.
func (s *Store) Walk(dir string, fn func(name string) error) error {
	if err := s.ensureInit(); err != nil {
		return err
	}

	pathDir, err := s.resolve(dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(pathDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, perrors.ErrNotFound)
	}
	return s.walkDir(pathDir, fn)
}

func (s *Store) walkDir(pathDir string, fn func(name string) error) error {
	// os.ReadDir returns entries sorted by name.
	entries, err := os.ReadDir(pathDir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.logicalName(pathDir), err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		entryPath := filepath.Join(pathDir, name)
		if entry.IsDir() {
			if err := s.walkDir(entryPath, fn); err != nil {
				return err
			}
			continue
		}
		if strings.HasSuffix(name, secretSuffix) {
			if err := fn(s.logicalName(entryPath)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Secrets returns the logical names of every secret under dir, in walk
// order.
func (s *Store) Secrets(dir string) ([]string, error) {
	var names []string
	err := s.Walk(dir, func(name string) error {
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
