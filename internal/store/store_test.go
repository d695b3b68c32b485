package store

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/nacl/secretbox"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// fakeCrypter is an in-process stand-in for the gpg backend. It seals
// plaintext with secretbox under a key derived from the identity list
// and embeds the list in a header, so Decrypt can recover it. Like gpg,
// decryption only succeeds when key material for at least one of the
// addressed identities is held.
type fakeCrypter struct {
	held map[string]bool
}

func newFakeCrypter(identities ...string) *fakeCrypter {
	held := make(map[string]bool)
	for _, id := range identities {
		held[id] = true
	}
	return &fakeCrypter{held: held}
}

func (c *fakeCrypter) Encrypt(plaintext []byte, identities []string) ([]byte, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("no recipients: %w", perrors.ErrEncryptFailed)
	}
	header := strings.Join(identities, ",")
	key := sha256.Sum256([]byte(header))

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &key)

	out := append([]byte(header), 0)
	return append(out, sealed...), nil
}

func (c *fakeCrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	i := bytes.IndexByte(ciphertext, 0)
	if i < 0 || len(ciphertext) < i+1+24 {
		return nil, fmt.Errorf("malformed ciphertext: %w", perrors.ErrDecryptFailed)
	}
	header := string(ciphertext[:i])

	authorized := false
	for _, id := range strings.Split(header, ",") {
		if c.held[id] {
			authorized = true
			break
		}
	}
	if !authorized {
		return nil, fmt.Errorf("no secret key for %s: %w", header, perrors.ErrDecryptFailed)
	}

	key := sha256.Sum256([]byte(header))
	body := ciphertext[i+1:]
	var nonce [24]byte
	copy(nonce[:], body[:24])

	plaintext, ok := secretbox.Open(nil, body[24:], &nonce, &key)
	if !ok {
		return nil, perrors.ErrDecryptFailed
	}
	return plaintext, nil
}

// historyOp records one call into the fake history backend.
type historyOp struct {
	kind      string // "stage", "remove", "commit"
	paths     []string
	message   string
	recursive bool
}

type fakeHistory struct {
	ops  []historyOp
	fail bool
}

func (h *fakeHistory) Stage(paths []string) error {
	if h.fail {
		return perrors.ErrHistory
	}
	h.ops = append(h.ops, historyOp{kind: "stage", paths: paths})
	return nil
}

func (h *fakeHistory) Remove(paths []string, recursive bool) error {
	if h.fail {
		return perrors.ErrHistory
	}
	h.ops = append(h.ops, historyOp{kind: "remove", paths: paths, recursive: recursive})
	return nil
}

func (h *fakeHistory) Commit(message string) error {
	if h.fail {
		return perrors.ErrHistory
	}
	h.ops = append(h.ops, historyOp{kind: "commit", message: message})
	return nil
}

func (h *fakeHistory) commits() []string {
	var messages []string
	for _, op := range h.ops {
		if op.kind == "commit" {
			messages = append(messages, op.message)
		}
	}
	return messages
}

func (h *fakeHistory) lastCommit() string {
	messages := h.commits()
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1]
}

// newTestStore builds a store over a temp directory, initialized with a
// root scope for identity "alice", whose key material the crypter holds.
func newTestStore(t *testing.T) (*Store, *fakeCrypter, *fakeHistory) {
	t.Helper()

	crypter := newFakeCrypter("alice")
	history := &fakeHistory{}
	st, err := New(Options{
		Root:    t.TempDir(),
		Crypter: crypter,
		History: history,
	})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := st.SetScope([]string{"alice"}, ""); err != nil {
		t.Fatalf("Failed to initialize store scope: %v", err)
	}
	return st, crypter, history
}

func TestNew_RequiresRootAndCrypter(t *testing.T) {
	if _, err := New(Options{Crypter: newFakeCrypter()}); err == nil {
		t.Error("Expected error for missing root")
	}
	if _, err := New(Options{Root: t.TempDir()}); err == nil {
		t.Error("Expected error for missing crypter")
	}
}

func TestIsInit(t *testing.T) {
	st, err := New(Options{Root: t.TempDir(), Crypter: newFakeCrypter("alice")})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if st.IsInit() {
		t.Error("Expected fresh store to be uninitialized")
	}
	if err := st.SetScope([]string{"alice"}, ""); err != nil {
		t.Fatalf("Failed to set root scope: %v", err)
	}
	if !st.IsInit() {
		t.Error("Expected store with root scope to be initialized")
	}
}

func TestUninitializedStore_OperationsFail(t *testing.T) {
	st, err := New(Options{Root: t.TempDir(), Crypter: newFakeCrypter("alice")})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := st.Get("x"); !errors.Is(err, perrors.ErrNotInitialized) {
		t.Errorf("Get: expected ErrNotInitialized, got: %v", err)
	}
	if err := st.Set("x", "data", SetOptions{}); !errors.Is(err, perrors.ErrNotInitialized) {
		t.Errorf("Set: expected ErrNotInitialized, got: %v", err)
	}
	if err := st.Walk("", func(string) error { return nil }); !errors.Is(err, perrors.ErrNotInitialized) {
		t.Errorf("Walk: expected ErrNotInitialized, got: %v", err)
	}
}

func TestHistoryFailure_IsNonFatal(t *testing.T) {
	st, _, history := newTestStore(t)
	history.fail = true

	if err := st.Set("web/example", "hunter2", SetOptions{}); err != nil {
		t.Fatalf("Expected history failure to be non-fatal, got: %v", err)
	}
	content, err := st.Get("web/example")
	if err != nil {
		t.Fatalf("Failed to get secret: %v", err)
	}
	if content != "hunter2" {
		t.Errorf("Expected content despite history failure, got %q", content)
	}
}

func TestInitHistory(t *testing.T) {
	crypter := newFakeCrypter("alice")
	st, err := New(Options{Root: t.TempDir(), Crypter: crypter})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := st.SetScope([]string{"alice"}, ""); err != nil {
		t.Fatalf("Failed to set root scope: %v", err)
	}
	if st.HasHistory() {
		t.Fatal("Expected no history before InitHistory")
	}

	history := &fakeHistory{}
	if err := st.InitHistory(history); err != nil {
		t.Fatalf("Failed to init history: %v", err)
	}
	if !st.HasHistory() {
		t.Error("Expected history after InitHistory")
	}

	messages := history.commits()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 commits, got %d: %v", len(messages), messages)
	}
	if messages[0] != "Add current contents of password store." {
		t.Errorf("Unexpected first commit: %q", messages[0])
	}
	if messages[1] != "Configure git repository for gpg file diff." {
		t.Errorf("Unexpected second commit: %q", messages[1])
	}

	data, err := os.ReadFile(filepath.Join(st.Root(), ".gitattributes"))
	if err != nil {
		t.Fatalf("Failed to read .gitattributes: %v", err)
	}
	if string(data) != "*.gpg diff=gpg\n" {
		t.Errorf("Unexpected .gitattributes content: %q", data)
	}

	// A second InitHistory must silently do nothing.
	if err := st.InitHistory(&fakeHistory{}); err != nil {
		t.Errorf("Expected repeated InitHistory to no-op, got: %v", err)
	}
}
