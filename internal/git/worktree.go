package git

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Byron/gitbutler/internal/deps"
)

// WorktreeChanges extracts the uncommitted changes of the working tree
// relative to HEAD as zero-context hunks, ordered by path. Binary changes
// and mode-only changes carry no textual patch and are skipped for hunk
// analysis. A path that cannot be read or diffed is reported as a
// CalculationError and skipped; the remaining paths still extract.
func (r *Repository) WorktreeChanges() ([]deps.WorktreeChange, []deps.CalculationError, error) {
	wt, err := r.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get worktree status: %w", err)
	}

	headTree, err := r.headTree()
	if err != nil {
		return nil, nil, err
	}

	var paths []string
	for path, st := range status {
		if st.Staging == gogit.Unmodified && st.Worktree == gogit.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var changes []deps.WorktreeChange
	var calcErrs []deps.CalculationError
	for _, path := range paths {
		hunks, err := r.worktreeHunks(wt, headTree, path)
		if err != nil {
			calcErrs = append(calcErrs, deps.CalculationError{
				Kind:    deps.ErrKindPathRanges,
				Path:    path,
				Message: err.Error(),
			})
			continue
		}
		// Binary and mode-only changes produce no hunks.
		if len(hunks) == 0 {
			continue
		}
		changes = append(changes, deps.WorktreeChange{Path: path, Hunks: hunks})
	}

	return changes, calcErrs, nil
}

func (r *Repository) worktreeHunks(wt *gogit.Worktree, headTree *object.Tree, path string) ([]deps.Hunk, error) {
	old, err := headFileContent(headTree, path)
	if err != nil {
		return nil, err
	}
	new, err := worktreeFileContent(filepath.Join(wt.Filesystem.Root(), path))
	if err != nil {
		return nil, err
	}
	if isBinary(old) || isBinary(new) {
		return nil, nil
	}
	return unifiedHunks(path, old, new)
}

// headTree returns the tree of HEAD, or nil in an empty repository.
func (r *Repository) headTree() (*object.Tree, error) {
	head, err := r.Head()
	if err == plumbing.ErrReferenceNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD tree: %w", err)
	}
	return tree, nil
}

// headFileContent returns the blob content of path in tree, or nil when the
// file does not exist there.
func headFileContent(tree *object.Tree, path string) ([]byte, error) {
	if tree == nil {
		return nil, nil
	}
	file, err := tree.File(path)
	if err == object.ErrFileNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s in HEAD: %w", path, err)
	}
	return blobContent(&file.Blob)
}

// worktreeFileContent reads a working tree file, or nil when it was deleted.
func worktreeFileContent(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

func blobContent(blob *object.Blob) ([]byte, error) {
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return content, nil
}
