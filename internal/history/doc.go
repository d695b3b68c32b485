// Package history implements the store's version-history backend on
// top of the git binary.
//
// The store engine records every successful mutation as a staged set of
// paths followed by a commit. This package provides exactly that
// surface: Stage, Remove, and Commit, plus repository detection and
// creation. Whether a store is versioned at all is discovered at
// construction time with Detect; a store outside any git work tree gets
// a nil handle, and every method on a nil *Git is a silent no-op.
//
// History is best-effort provenance, not a correctness mechanism: the
// engine treats failures here as non-fatal and logs them, since the
// plaintext-level state of the store must never depend on a commit
// succeeding.
package history
