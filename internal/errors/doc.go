// Package errors provides typed error values for the passtree store engine.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: Store state issues (ErrNotInitialized, ErrInvalidPath)
//   - Entry errors: Secret/directory issues (ErrNotFound, ErrAlreadyExists)
//   - Backend errors: Encryption/history failures (ErrDecryptFailed, ErrHistory)
//
// # Usage
//
// Return errors from internal packages, wrapped with the offending logical
// path:
//
//	if !info.Mode().IsRegular() {
//	    return fmt.Errorf("%s: %w", name, errors.ErrNotFound)
//	}
//
// Handle errors in the CLI layer:
//
//	content, err := st.Get(name)
//	if errors.Is(err, perrors.ErrNotFound) {
//	    // Show user-friendly message
//	}
package errors
