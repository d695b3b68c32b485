package utils

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadSecret prompts the user for a secret without echoing input.
// Returns an error if stdin is not a terminal.
func ReadSecret(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read secret: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	return secret, nil
}

// ReadSecretConfirmed prompts for a secret twice and verifies both
// entries match.
func ReadSecretConfirmed(prompt, confirmPrompt string) ([]byte, error) {
	first, err := ReadSecret(prompt)
	if err != nil {
		return nil, err
	}
	second, err := ReadSecret(confirmPrompt)
	if err != nil {
		return nil, err
	}
	if string(first) != string(second) {
		return nil, fmt.Errorf("entries do not match")
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
