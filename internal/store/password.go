package store

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// DefaultPasswordLength is used when Generate is given no length.
const DefaultPasswordLength = 25

const (
	alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	symbols       = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// GeneratePassword returns a random password of the given length drawn
// from alphanumerics, plus punctuation when withSymbols is true.
func GeneratePassword(length int, withSymbols bool) (string, error) {
	charset := alphanumerics
	if withSymbols {
		charset += symbols
	}

	max := big.NewInt(int64(len(charset)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		b.WriteByte(charset[n.Int64()])
	}
	return b.String(), nil
}
