package errors

import "errors"

// Store state errors indicate issues with store initialization or layout.
var (
	// ErrNotInitialized indicates the store root has no .gpg-id file.
	ErrNotInitialized = errors.New("password store has not been initialized")

	// ErrInvalidPath indicates a path is malformed or escapes the store root.
	ErrInvalidPath = errors.New("path is outside the password store")

	// ErrPathConflict indicates a path exists but is not the expected kind of entry.
	ErrPathConflict = errors.New("path exists but is not a directory")
)

// Entry errors indicate issues with individual secrets or directories.
var (
	// ErrNotFound indicates a secret or directory is not in the store.
	ErrNotFound = errors.New("not in the password store")

	// ErrAlreadyExists indicates a secret already exists and force was not given.
	ErrAlreadyExists = errors.New("an entry already exists")

	// ErrDirectoryNotEmpty indicates a non-recursive removal hit a non-empty directory.
	ErrDirectoryNotEmpty = errors.New("directory is not empty")

	// ErrMissingIdentity indicates a scope removal found no .gpg-id file to remove.
	ErrMissingIdentity = errors.New("no gpg id file to remove")
)

// Backend errors indicate failures in the encryption or history backends.
var (
	// ErrEncryptFailed indicates the encryption backend could not encrypt a secret.
	ErrEncryptFailed = errors.New("failed to encrypt secret")

	// ErrDecryptFailed indicates the encryption backend could not decrypt a secret.
	ErrDecryptFailed = errors.New("failed to decrypt secret")

	// ErrHistory indicates the history backend failed to record a mutation.
	// History errors are non-fatal: the store logs them and continues.
	ErrHistory = errors.New("failed to record change in history")
)
