package deps

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// StackID identifies one stack (branch line) within a workspace. It is
// opaque to the engine; the workspace layer uses uuid strings.
type StackID string

// HunkRange is a half-open line range [Start, Start+Lines) in one file.
type HunkRange struct {
	Start int
	Lines int
}

// End returns the exclusive end line of the range.
func (r HunkRange) End() int { return r.Start + r.Lines }

// Overlaps reports whether two half-open ranges share at least one line.
// A zero-length range never overlaps anything.
func (r HunkRange) Overlaps(o HunkRange) bool {
	return r.Start < o.End() && o.Start < r.End()
}

// Touches reports overlap or direct line adjacency. Adjacency matters for
// commit dependency edges: a commit editing the line right after an earlier
// commit's edit cannot be reordered before it.
func (r HunkRange) Touches(o HunkRange) bool {
	return r.Start <= o.End() && o.Start <= r.End()
}

// InputStack is one stack as the indexer consumes it: commits ordered from
// the integration base toward the tip. Base, when set, is the stack's own
// fork point and overrides the workspace-wide base as the first commit's
// parent.
type InputStack struct {
	ID      StackID
	Base    plumbing.Hash
	Commits []plumbing.Hash
}

// FileChange is the set of line ranges one commit touched in one file, in
// the commit's own new-file coordinates.
type FileChange struct {
	Path   string
	Ranges []HunkRange
}

// CommitDiffer is the object-store capability the indexer depends on: the
// path-scoped changes a commit introduced relative to its immediate
// predecessor.
type CommitDiffer interface {
	CommitChanges(commit, parent plumbing.Hash) ([]FileChange, error)
}

// Hunk is a contiguous run of changed lines in a zero-context unified diff
// of one uncommitted file change. Patch is the literal hunk text, header
// line first.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Patch    string
}

// OldRange returns the hunk's position in the old file as a half-open range.
func (h Hunk) OldRange() HunkRange {
	return HunkRange{Start: h.OldStart, Lines: h.OldLines}
}

// WorktreeChange is one uncommitted file change, decomposed into
// zero-context hunks by the change extractor.
type WorktreeChange struct {
	Path  string
	Hunks []Hunk
}
