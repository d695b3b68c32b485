package store

import (
	"fmt"
	"os"
	"path/filepath"

	perrors "github.com/kahu-tools/passtree/internal/errors"
	logger "github.com/kahu-tools/passtree/internal/logging"
)

// Crypter is the encryption backend contract. Encrypt addresses a
// plaintext to a list of identities; Decrypt recovers the plaintext
// using locally available key material.
type Crypter interface {
	Encrypt(plaintext []byte, identities []string) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// History is the version-history backend contract. The store always
// pairs Stage or Remove with a Commit.
type History interface {
	Stage(paths []string) error
	Remove(paths []string, recursive bool) error
	Commit(message string) error
}

// Store is a hierarchical encrypted secret store rooted at a single
// directory. Every secret is an individually encrypted file at
// <root>/<name>.gpg, and every directory may carry a .gpg-id file
// binding its subtree to a set of encryption identities.
type Store struct {
	root    string
	crypter Crypter
	history History
	log     logger.Logger
}

// Options configures a Store.
type Options struct {
	// Root is the store directory. Required.
	Root string

	// Crypter is the encryption backend. Required.
	Crypter Crypter

	// History is the version-history backend. Nil disables history;
	// all history operations become silent no-ops.
	History History

	// Verbose enables info logging.
	Verbose bool

	// Debug enables debug logging.
	Debug bool
}

// New constructs a Store over an existing or to-be-initialized root
// directory. The history handle is discovered by the caller, not
// created here, and may be nil until explicitly initialized.
func New(opts Options) (*Store, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("store root is required")
	}
	if opts.Crypter == nil {
		return nil, fmt.Errorf("encryption backend is required")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store root: %w", err)
	}

	return &Store{
		root:    filepath.Clean(root),
		crypter: opts.Crypter,
		history: opts.History,
		log:     logger.Logger{Verbose: opts.Verbose, Debug: opts.Debug},
	}, nil
}

// Root returns the absolute path of the store root.
func (s *Store) Root() string {
	return s.root
}

// IsInit reports whether the store root carries a .gpg-id file.
func (s *Store) IsInit() bool {
	info, err := os.Stat(filepath.Join(s.root, scopeName))
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether name refers to a directory inside the store.
// Names that fail resolution, including any that would escape the
// root, are not directories.
func (s *Store) IsDir(name string) bool {
	path, err := s.resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HasHistory reports whether a history backend is attached.
func (s *Store) HasHistory() bool {
	return s.history != nil
}

// InitHistory attaches a freshly created history backend and records
// the current store contents as its first commits. It silently does
// nothing when history is already attached.
func (s *Store) InitHistory(h History) error {
	if s.history != nil || h == nil {
		return nil
	}
	s.history = h

	if err := h.Stage([]string{s.root}); err != nil {
		return err
	}
	if err := h.Commit("Add current contents of password store."); err != nil {
		return err
	}

	attributesPath := filepath.Join(s.root, ".gitattributes")
	// #nosec G306 -- the attributes file holds no secret material.
	if err := os.WriteFile(attributesPath, []byte("*.gpg diff=gpg\n"), 0644); err != nil {
		return fmt.Errorf("failed to write .gitattributes: %w", err)
	}
	if err := h.Stage([]string{attributesPath}); err != nil {
		return err
	}
	return h.Commit("Configure git repository for gpg file diff.")
}

// ensureInit guards secret operations: the root must have at least one
// identity scope before any of them can succeed.
func (s *Store) ensureInit() error {
	if !s.IsInit() {
		return perrors.ErrNotInitialized
	}
	return nil
}

// stageCommit records a mutation in history. History failures are
// logged, never surfaced: plaintext-level correctness must not depend
// on history success.
func (s *Store) stageCommit(paths []string, message string) {
	if s.history == nil {
		return
	}
	if err := s.history.Stage(paths); err != nil {
		s.log.Warnf("%v", err)
		return
	}
	if err := s.history.Commit(message); err != nil {
		s.log.Warnf("%v", err)
	}
}

// stageRemove records a removal in history. An empty message stages the
// removal without committing, so a following stageCommit can cover the
// whole operation in one commit.
func (s *Store) stageRemove(paths []string, message string, recursive bool) {
	if s.history == nil {
		return
	}
	if err := s.history.Remove(paths, recursive); err != nil {
		s.log.Warnf("%v", err)
		return
	}
	if message == "" {
		return
	}
	if err := s.history.Commit(message); err != nil {
		s.log.Warnf("%v", err)
	}
}
