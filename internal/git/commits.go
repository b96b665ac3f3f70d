package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Byron/gitbutler/internal/deps"
)

// CommitChanges returns the per-path line ranges commit introduced relative
// to parent, in the commit's own new-file coordinates. It implements
// deps.CommitDiffer. A zero parent diffs against the empty tree.
func (r *Repository) CommitChanges(commit, parent plumbing.Hash) ([]deps.FileChange, error) {
	commitTree, err := r.treeOf(commit)
	if err != nil {
		return nil, err
	}
	var parentTree *object.Tree
	if !parent.IsZero() {
		parentTree, err = r.treeOf(parent)
		if err != nil {
			return nil, err
		}
	}

	treeChanges, err := object.DiffTree(parentTree, commitTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff commit %s: %w", commit, err)
	}

	var changes []deps.FileChange
	for _, treeChange := range treeChanges {
		path := treeChange.To.Name
		if path == "" {
			path = treeChange.From.Name
		}
		old, err := treeEntryContent(parentTree, treeChange.From.Name)
		if err != nil {
			return nil, err
		}
		new, err := treeEntryContent(commitTree, treeChange.To.Name)
		if err != nil {
			return nil, err
		}
		if isBinary(old) || isBinary(new) {
			continue
		}
		hunks, err := unifiedHunks(path, old, new)
		if err != nil {
			return nil, err
		}
		if len(hunks) == 0 {
			continue
		}
		ranges := make([]deps.HunkRange, 0, len(hunks))
		for _, hunk := range hunks {
			ranges = append(ranges, deps.HunkRange{Start: hunk.NewStart, Lines: hunk.NewLines})
		}
		changes = append(changes, deps.FileChange{Path: path, Ranges: ranges})
	}

	return changes, nil
}

func (r *Repository) treeOf(id plumbing.Hash) (*object.Tree, error) {
	commit, err := r.CommitObject(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", id, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree of %s: %w", id, err)
	}
	return tree, nil
}

// treeEntryContent returns the blob content of name in tree, or nil when
// the entry or the tree is absent (added or deleted files).
func treeEntryContent(tree *object.Tree, name string) ([]byte, error) {
	if tree == nil || name == "" {
		return nil, nil
	}
	file, err := tree.File(name)
	if err == object.ErrFileNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", name, err)
	}
	return blobContent(&file.Blob)
}
