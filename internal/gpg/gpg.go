package gpg

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// GPG invokes the gpg binary to encrypt and decrypt secrets. The option
// set disables default-recipient behavior and compression so that output
// stays compatible with other password store implementations.
type GPG struct {
	Bin  string
	Opts []string
}

// New returns a GPG backend for the given binary. When useAgent is true
// the backend runs gpg in batch mode against a persistent agent.
func New(bin string, useAgent bool) *GPG {
	opts := []string{"--quiet", "--yes", "--compress-algo=none", "--no-encrypt-to"}
	if useAgent {
		opts = append(opts, "--batch", "--use-agent")
	}
	return &GPG{Bin: bin, Opts: opts}
}

// Encrypt encrypts plaintext for the given identities.
func (g *GPG) Encrypt(plaintext []byte, identities []string) ([]byte, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("no recipients: %w", perrors.ErrEncryptFailed)
	}

	args := append([]string{}, g.Opts...)
	args = append(args, "--encrypt")
	for _, id := range identities {
		args = append(args, "--recipient", id)
	}

	out, err := g.run(args, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrEncryptFailed, err)
	}
	return out, nil
}

// Decrypt decrypts ciphertext using locally available key material.
func (g *GPG) Decrypt(ciphertext []byte) ([]byte, error) {
	args := append([]string{}, g.Opts...)
	args = append(args, "--decrypt")

	out, err := g.run(args, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrDecryptFailed, err)
	}
	return out, nil
}

// DecryptCommand returns the decrypt invocation as a shell command string,
// suitable for git's diff.gpg.textconf setting.
func (g *GPG) DecryptCommand() string {
	return g.Bin + " -d " + strings.Join(g.Opts, " ")
}

func (g *GPG) run(args []string, stdin []byte) ([]byte, error) {
	cmd := exec.Command(g.Bin, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %s", err, msg)
	}
	return stdout.Bytes(), nil
}
