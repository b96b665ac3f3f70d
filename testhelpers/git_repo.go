// Package testhelpers builds throwaway git repositories for tests using
// go-git, so tests do not depend on a git binary being installed.
package testhelpers

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a test repository rooted in a temporary directory.
type GitRepo struct {
	t    *testing.T
	Dir  string
	Repo *gogit.Repository
	wt   *gogit.Worktree
}

// NewGitRepo initializes a fresh repository in a temp directory with an
// initial empty commit on main.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	r := &GitRepo{t: t, Dir: dir, Repo: repo, wt: wt}
	r.WriteFile(".gitkeep", "")
	r.Commit("initial commit")
	return r
}

// WriteFile writes content to path relative to the repository root.
func (r *GitRepo) WriteFile(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.Dir, path)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

// RemoveFile deletes path relative to the repository root.
func (r *GitRepo) RemoveFile(path string) {
	r.t.Helper()
	require.NoError(r.t, os.Remove(filepath.Join(r.Dir, path)))
}

// Commit stages everything and commits, returning the new commit id.
func (r *GitRepo) Commit(message string) plumbing.Hash {
	r.t.Helper()
	err := r.wt.AddWithOptions(&gogit.AddOptions{All: true})
	require.NoError(r.t, err)

	sig := &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	hash, err := r.wt.Commit(message, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	return hash
}

// Branch creates a branch at the current HEAD.
func (r *GitRepo) Branch(name string) {
	r.t.Helper()
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}

// Checkout switches the worktree to a branch.
func (r *GitRepo) Checkout(name string) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	require.NoError(r.t, err)
}

// Head returns the current HEAD commit id.
func (r *GitRepo) Head() plumbing.Hash {
	r.t.Helper()
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	return head.Hash()
}

// Lines joins lines with newlines and a trailing newline, for readable
// file fixtures.
func Lines(lines ...string) string {
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	return content
}

// NumberedLines produces n lines "line 1".."line n".
func NumberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line " + strconv.Itoa(i+1)
	}
	return lines
}
