package store

import (
	"strings"
	"testing"
)

func TestGeneratePassword_Length(t *testing.T) {
	for _, length := range []int{1, 8, 25, 100} {
		password, err := GeneratePassword(length, true)
		if err != nil {
			t.Fatalf("Failed to generate password: %v", err)
		}
		if len(password) != length {
			t.Errorf("Expected length %d, got %d", length, len(password))
		}
	}
}

func TestGeneratePassword_AlphanumericOnly(t *testing.T) {
	// Long enough that a symbol would almost surely appear if the
	// charset were wrong.
	password, err := GeneratePassword(512, false)
	if err != nil {
		t.Fatalf("Failed to generate password: %v", err)
	}
	for _, r := range password {
		if !strings.ContainsRune(alphanumerics, r) {
			t.Fatalf("Unexpected character %q in alphanumeric password", r)
		}
	}
}

func TestGeneratePassword_FullCharset(t *testing.T) {
	password, err := GeneratePassword(512, true)
	if err != nil {
		t.Fatalf("Failed to generate password: %v", err)
	}
	charset := alphanumerics + symbols
	for _, r := range password {
		if !strings.ContainsRune(charset, r) {
			t.Fatalf("Unexpected character %q in password", r)
		}
	}
}

func TestGeneratePassword_Unpredictable(t *testing.T) {
	a, err := GeneratePassword(32, true)
	if err != nil {
		t.Fatalf("Failed to generate password: %v", err)
	}
	b, err := GeneratePassword(32, true)
	if err != nil {
		t.Fatalf("Failed to generate password: %v", err)
	}
	if a == b {
		t.Error("Expected distinct passwords across calls")
	}
}
