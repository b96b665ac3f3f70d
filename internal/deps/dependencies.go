package deps

import (
	"encoding/json"

	"github.com/go-git/go-git/v5/plumbing"
)

// HunkLock ties an uncommitted hunk to one commit in one stack. A hunk
// carrying locks from more than one stack cannot be cleanly attributed to a
// single branch line.
type HunkLock struct {
	StackID  StackID
	CommitID plumbing.Hash
}

// MarshalJSON serializes the lock with the commit id in hex form.
func (l HunkLock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StackID  StackID `json:"stackId"`
		CommitID string  `json:"commitId"`
	}{StackID: l.StackID, CommitID: l.CommitID.String()})
}

// DiffDependency is one analyzed hunk: its identity plus the locks it
// carries. An empty lock list means the hunk was analyzed and found free.
type DiffDependency struct {
	Hash  HunkHash   `json:"hash"`
	Locks []HunkLock `json:"locks"`
}

// HunkDependencies is the aggregate result of one dependency computation.
// Only Diffs and Errors cross the serialization boundary; the per-stack
// maps are in-process companions keyed by commit identifier.
type HunkDependencies struct {
	// Diffs holds one entry per analyzed hunk, each hunk's zero or more
	// locks in discovery order.
	Diffs []DiffDependency `json:"diffs"`
	// CommitDependencies maps, per stack, a commit to the commits it
	// depends on.
	CommitDependencies CommitGraph `json:"-"`
	// InverseCommitDependencies maps, per stack, a commit to the commits
	// that depend on it.
	InverseCommitDependencies CommitGraph `json:"-"`
	// CommitDependentDiffs maps, per stack, a commit to the hunk hashes
	// that depend on it.
	CommitDependentDiffs map[StackID]map[plumbing.Hash]map[HunkHash]struct{} `json:"-"`
	// Errors holds what could not be computed; the rest of the result is
	// still valid.
	Errors []CalculationError `json:"errors"`
}

// Calculate assembles the dependency aggregate from the extracted worktree
// changes and the indexed workspace ranges.
func Calculate(changes []WorktreeChange, ranges *WorkspaceRanges) *HunkDependencies {
	result := &HunkDependencies{
		Diffs:                []DiffDependency{},
		CommitDependentDiffs: make(map[StackID]map[plumbing.Hash]map[HunkHash]struct{}),
		Errors:               []CalculationError{},
	}

	for _, change := range changes {
		for _, hunk := range change.Hunks {
			locks := []HunkLock{}
			for _, dep := range ranges.Intersection(change.Path, hunk.OldStart, hunk.OldLines) {
				locks = append(locks, HunkLock{StackID: dep.StackID, CommitID: dep.CommitID})
			}
			result.Diffs = append(result.Diffs, DiffDependency{
				Hash:  HashHunk(hunk.Patch),
				Locks: locks,
			})
		}
	}

	for _, diff := range result.Diffs {
		for _, lock := range diff.Locks {
			commits, ok := result.CommitDependentDiffs[lock.StackID]
			if !ok {
				commits = make(map[plumbing.Hash]map[HunkHash]struct{})
				result.CommitDependentDiffs[lock.StackID] = commits
			}
			hashes, ok := commits[lock.CommitID]
			if !ok {
				hashes = make(map[HunkHash]struct{})
				commits[lock.CommitID] = hashes
			}
			hashes[diff.Hash] = struct{}{}
		}
	}

	result.CommitDependencies, result.InverseCommitDependencies = ranges.CommitDependencies()
	result.Errors = append(result.Errors, ranges.Errors()...)
	return result
}
