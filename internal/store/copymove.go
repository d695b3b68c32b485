package store

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// Copy duplicates a secret or directory within the store. The
// destination subtree is re-encrypted against its effective identities,
// which may differ from the source's due to differing ancestor scopes.
func (s *Store) Copy(oldName, newName string, force bool) error {
	return s.copyMove(oldName, newName, force, false)
}

// Move relocates a secret or directory within the store, removing the
// source after the destination subtree has been re-encrypted.
func (s *Store) Move(oldName, newName string, force bool) error {
	return s.copyMove(oldName, newName, force, true)
}

func (s *Store) copyMove(oldName, newName string, force, move bool) error {
	if err := s.ensureInit(); err != nil {
		return err
	}

	// A trailing separator forces directory semantics for the
	// destination even before normalization strips it.
	intoDir := strings.HasSuffix(newName, "/")

	oldPath, err := s.resolve(oldName)
	if err != nil {
		return err
	}
	newPath, err := s.resolve(newName)
	if err != nil {
		return err
	}

	// History messages carry the normalized names, not the raw input.
	oldLabel := s.logicalName(oldPath)
	newLabel := s.logicalName(newPath)

	destDir := false
	if info, statErr := os.Stat(oldPath); statErr == nil && info.IsDir() {
		if info, statErr := os.Stat(newPath); statErr == nil && info.IsDir() {
			destDir = true
		}
	} else {
		oldPath += secretSuffix
		if info, statErr := os.Stat(newPath); (statErr == nil && info.IsDir()) || intoDir {
			destDir = true
		} else {
			newPath += secretSuffix
		}
	}

	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("%s: %w", oldName, perrors.ErrNotFound)
	}

	// A destination directory receives the entry under its own base name.
	if destDir {
		newPath = filepath.Join(newPath, filepath.Base(oldPath))
	}

	if _, err := os.Stat(newPath); err == nil {
		if !force {
			return fmt.Errorf("%s: %w", s.logicalName(newPath), perrors.ErrAlreadyExists)
		}
		if err := os.RemoveAll(newPath); err != nil {
			return fmt.Errorf("failed to replace %s: %w", s.logicalName(newPath), err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.logicalName(newPath), err)
	}

	if move {
		if err := os.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("failed to move %s: %w", oldName, err)
		}
	} else {
		if err := copyPath(oldPath, newPath); err != nil {
			return fmt.Errorf("failed to copy %s: %w", oldName, err)
		}
	}

	// The destination may sit under different ancestor scopes.
	if err := s.reencryptTree(newPath); err != nil {
		return err
	}

	action := "Copy"
	if move {
		action = "Rename"
		// Best-effort cleanup of anything left at the source.
		_ = os.RemoveAll(oldPath)
		if _, err := os.Stat(oldPath); os.IsNotExist(err) {
			s.stageRemove([]string{oldPath}, "", true)
		}
	}

	s.stageCommit([]string{newPath}, fmt.Sprintf("%s %s to %s.", action, oldLabel, newLabel))
	return nil
}

// copyPath copies a file or a whole directory tree.
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyFS(dst, os.DirFS(src))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, info.Mode().Perm())
}

// copyFS is a backport of os.CopyFS, which requires Go 1.23 and is
// unavailable on the Go 1.21 toolchain used to build this module.
func copyFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		newPath := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(newPath, 0777)
		}
		if !d.Type().IsRegular() {
			return &os.PathError{Op: "CopyFS", Path: path, Err: os.ErrInvalid}
		}
		r, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()
		info, err := r.Stat()
		if err != nil {
			return err
		}
		w, err := os.OpenFile(newPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666|info.Mode()&0777)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, r); err != nil {
			w.Close()
			return &os.PathError{Op: "Copy", Path: newPath, Err: err}
		}
		return w.Close()
	})
}
