// Package store implements the secret tree engine: a hierarchical
// encrypted secret store laid out as a directory tree on disk.
//
// # On-Disk Layout
//
// The layout is the interchange format shared with other password
// store implementations, so stores are portable between them:
//
//   - <root>/<name>.gpg           one encrypted file per secret
//   - <root>/<dir>/.gpg-id        newline-terminated identity list
//
// A secret's logical name is its root-relative, slash-separated path
// without the .gpg suffix. Existence is defined solely by the presence
// of the file. Hidden entries (leading dot) are never surfaced by
// listing, traversal, or search.
//
// # Identity Scopes
//
// The nearest ancestor .gpg-id file, including the secret's own
// directory, determines the effective identity set for every secret
// beneath it. Changing a scope re-encrypts the entire subtree
// unconditionally, including portions covered by nested untouched
// scope files: under-re-encrypting risks leaving secrets readable by
// identities that should have lost access.
//
// # Backends
//
// Encryption and version history are external collaborators behind the
// Crypter and History interfaces. The production implementations shell
// out to gpg and git (internal/gpg, internal/history); a nil History
// disables versioning. History is best-effort provenance: failures are
// logged and never fail the operation, and multi-step operations are
// not atomic, so a crash can leave correct plaintext content with an
// incomplete history record.
//
// # Concurrency
//
// All operations are synchronous and complete before returning. The
// filesystem is the only shared state; nothing guards against two
// processes mutating the same store concurrently.
package store
