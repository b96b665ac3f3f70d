// Package git wraps go-git repository access for the dependency engine:
// opening repositories, walking stack commits and producing zero-context
// unified diffs for both the working tree and historical commits.
package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps a go-git repository. All operations are read-only.
type Repository struct {
	*gogit.Repository
	path string
}

// Open opens the git repository containing path.
func Open(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", absPath, err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

// Root returns the directory the repository was opened at.
func (r *Repository) Root() string {
	return r.path
}

// ResolveBranch resolves a local branch name to its head commit.
func (r *Repository) ResolveBranch(name string) (plumbing.Hash, error) {
	ref, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}
	return ref.Hash(), nil
}

// CommitsBetween returns the commits reachable from head but not from base
// (base..head), head first. Walks first parents only: stack commits form a
// single line on top of the integration base.
func (r *Repository) CommitsBetween(head, base plumbing.Hash) ([]*object.Commit, error) {
	var commits []*object.Commit
	cursor := head
	for !cursor.IsZero() && cursor != base {
		commit, err := r.CommitObject(cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", cursor, err)
		}
		commits = append(commits, commit)
		if commit.NumParents() == 0 {
			break
		}
		cursor = commit.ParentHashes[0]
	}
	return commits, nil
}

// MergeBase returns the best common ancestor of two commits.
func (r *Repository) MergeBase(a, b plumbing.Hash) (plumbing.Hash, error) {
	commitA, err := r.CommitObject(a)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get commit %s: %w", a, err)
	}
	commitB, err := r.CommitObject(b)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get commit %s: %w", b, err)
	}
	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to find merge base: %w", err)
	}
	if len(bases) == 0 {
		return plumbing.ZeroHash, fmt.Errorf("no merge base between %s and %s", a, b)
	}
	return bases[0].Hash, nil
}
