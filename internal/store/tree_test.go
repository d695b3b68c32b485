package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

func TestListChildren(t *testing.T) {
	st, _, _ := newTestStore(t)

	for _, name := range []string{"web/a", "web/b", "mail/c"} {
		if err := st.Set(name, "x", SetOptions{}); err != nil {
			t.Fatalf("Failed to set %s: %v", name, err)
		}
	}

	dirs, secrets, err := st.ListChildren("")
	if err != nil {
		t.Fatalf("Failed to list children: %v", err)
	}
	if !reflect.DeepEqual(dirs, []string{"mail", "web"}) {
		t.Errorf("Expected [mail web], got %v", dirs)
	}
	if len(secrets) != 0 {
		t.Errorf("Expected no secrets at the root, got %v", secrets)
	}

	dirs, secrets, err = st.ListChildren("web")
	if err != nil {
		t.Fatalf("Failed to list children: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("Expected no subdirectories, got %v", dirs)
	}
	if !reflect.DeepEqual(secrets, []string{"web/a", "web/b"}) {
		t.Errorf("Expected [web/a web/b], got %v", secrets)
	}
}

func TestListChildren_SkipsHiddenAndForeignFiles(t *testing.T) {
	st, _, _ := newTestStore(t)

	if err := st.Set("visible", "x", SetOptions{}); err != nil {
		t.Fatalf("Failed to set secret: %v", err)
	}
	if err := os.WriteFile(filepath.Join(st.Root(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(st.Root(), ".git"), 0700); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	dirs, secrets, err := st.ListChildren("")
	if err != nil {
		t.Fatalf("Failed to list children: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("Expected no directories, got %v", dirs)
	}
	if !reflect.DeepEqual(secrets, []string{"visible"}) {
		t.Errorf("Expected only visible entries, got %v", secrets)
	}
}

func TestListChildren_MissingDirectory(t *testing.T) {
	st, _, _ := newTestStore(t)

	if _, _, err := st.ListChildren("nope"); !errors.Is(err, perrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	st, _, _ := newTestStore(t)

	for _, name := range []string{"b/inner", "a", "c", "b/deep/leaf"} {
		if err := st.Set(name, "x", SetOptions{}); err != nil {
			t.Fatalf("Failed to set %s: %v", name, err)
		}
	}

	var visited []string
	err := st.Walk("", func(name string) error {
		visited = append(visited, name)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk store: %v", err)
	}

	expected := []string{"a", "b/deep/leaf", "b/inner", "c"}
	if !reflect.DeepEqual(visited, expected) {
		t.Errorf("Expected %v, got %v", expected, visited)
	}
}

func TestWalk_PropagatesCallbackError(t *testing.T) {
	st, _, _ := newTestStore(t)

	if err := st.Set("a", "x", SetOptions{}); err != nil {
		t.Fatalf("Failed to set secret: %v", err)
	}

	boom := errors.New("boom")
	err := st.Walk("", func(name string) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected callback error to propagate, got: %v", err)
	}
}

func TestWalk_NotADirectory(t *testing.T) {
	st, _, _ := newTestStore(t)

	if err := st.Set("leaf", "x", SetOptions{}); err != nil {
		t.Fatalf("Failed to set secret: %v", err)
	}

	err := st.Walk("leaf", func(string) error { return nil })
	if !errors.Is(err, perrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestIsDir(t *testing.T) {
	st, _, _ := newTestStore(t)

	if err := st.Set("web/a", "x", SetOptions{}); err != nil {
		t.Fatalf("Failed to set secret: %v", err)
	}

	if !st.IsDir("web") {
		t.Error("Expected web to be a directory")
	}
	if st.IsDir("web/a") {
		t.Error("Expected web/a to be a secret, not a directory")
	}
	if st.IsDir("nope") {
		t.Error("Expected missing name not to be a directory")
	}
}

func TestIsDir_RejectsEscapingNames(t *testing.T) {
	st, _, _ := newTestStore(t)

	// A real directory outside the store must not be reachable
	// through an escaping name.
	outside := filepath.Join(st.Root(), "..", "outside")
	if err := os.MkdirAll(outside, 0700); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if st.IsDir("../outside") {
		t.Error("Expected escaping name not to resolve")
	}
	if st.IsDir("..") {
		t.Error("Expected parent reference not to resolve")
	}
}

func TestSecrets(t *testing.T) {
	st, _, _ := newTestStore(t)

	for _, name := range []string{"web/a", "web/b", "solo"} {
		if err := st.Set(name, "x", SetOptions{}); err != nil {
			t.Fatalf("Failed to set %s: %v", name, err)
		}
	}

	names, err := st.Secrets("web")
	if err != nil {
		t.Fatalf("Failed to list secrets: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"web/a", "web/b"}) {
		t.Errorf("Expected [web/a web/b], got %v", names)
	}
}
