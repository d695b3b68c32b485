package store

import (
	"fmt"
	"path/filepath"
	"strings"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

const (
	// secretSuffix is the file extension of every encrypted secret.
	secretSuffix = ".gpg"

	// scopeName is the per-directory identity list file.
	scopeName = ".gpg-id"

	// hiddenPrefix marks entries excluded from listing and traversal.
	hiddenPrefix = "."
)

// normalize collapses a logical name to a clean relative path and
// rejects anything that would escape the store root. The empty name
// resolves to the root itself.
func normalize(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." {
		return "", nil
	}

	// filepath.IsLocal rejects absolute paths, ".." escapes, and
	// platform-reserved names in one check.
	if !filepath.IsLocal(cleaned) {
		return "", fmt.Errorf("%s: %w", name, perrors.ErrInvalidPath)
	}
	return cleaned, nil
}

// resolve maps a logical name to an absolute path under the store root.
// Every component of the engine resolves paths through here; user input
// is never concatenated into filesystem paths anywhere else.
func (s *Store) resolve(name string) (string, error) {
	cleaned, err := normalize(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, cleaned), nil
}

// logicalName maps an absolute path under the store root back to the
// externally visible secret name: root-relative, slash-separated, with
// any .gpg suffix stripped.
func (s *Store) logicalName(absPath string) string {
	rel, err := filepath.Rel(s.root, absPath)
	if err != nil {
		return absPath
	}
	rel = strings.TrimSuffix(rel, secretSuffix)
	return filepath.ToSlash(rel)
}
