package history

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	perrors "github.com/kahu-tools/passtree/internal/errors"
)

// Git records store mutations as commits in a git repository rooted at
// the store directory. A nil *Git is a valid handle on which every
// operation is a silent no-op, which is how a store without version
// history behaves.
type Git struct {
	Bin     string
	WorkDir string
}

// Detect returns a Git handle if dir is inside a git work tree, nil
// otherwise. The handle is discovered, not created; use Init to create
// a new repository.
func Detect(bin, dir string) *Git {
	cmd := exec.Command(bin, "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return nil
	}
	return &Git{Bin: bin, WorkDir: dir}
}

// Init creates a new git repository at dir and returns a handle to it.
func Init(bin, dir string) (*Git, error) {
	g := &Git{Bin: bin, WorkDir: dir}
	if _, err := g.run("init"); err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrHistory, err)
	}
	return g, nil
}

// Stage adds the given paths to the index.
func (g *Git) Stage(paths []string) error {
	if g == nil {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := g.run(args...); err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrHistory, err)
	}
	return nil
}

// Remove stages the removal of the given paths. Paths that git does not
// know about are ignored so that removals of never-committed files do
// not fail the operation.
func (g *Git) Remove(paths []string, recursive bool) error {
	if g == nil {
		return nil
	}
	args := []string{"rm", "--quiet", "--ignore-unmatch"}
	if recursive {
		args = append(args, "-r")
	}
	args = append(args, "--")
	args = append(args, paths...)
	if _, err := g.run(args...); err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrHistory, err)
	}
	return nil
}

// Commit commits the currently staged changes with the given message.
// It is a no-op when nothing is staged.
func (g *Git) Commit(message string) error {
	if g == nil {
		return nil
	}
	// Nothing staged means nothing to commit.
	if _, err := g.run("diff", "--cached", "--quiet"); err == nil {
		return nil
	}
	if _, err := g.run("commit", "-m", message); err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrHistory, err)
	}
	return nil
}

// Config sets a local git configuration value for the repository.
func (g *Git) Config(key, value string) error {
	if g == nil {
		return nil
	}
	if _, err := g.run("config", "--local", key, value); err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrHistory, err)
	}
	return nil
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command(g.Bin, args...)
	cmd.Dir = g.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", err
		}
		return "", fmt.Errorf("%s: %s", err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
