package deps

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// CommitSet is a set of commit identifiers.
type CommitSet map[plumbing.Hash]struct{}

// Add inserts id into the set.
func (s CommitSet) Add(id plumbing.Hash) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s CommitSet) Has(id plumbing.Hash) bool {
	_, ok := s[id]
	return ok
}

// CommitGraph maps, per stack, a commit to a set of related commits. The
// same shape serves both directions: commit -> commits it depends on, and
// commit -> commits depending on it.
type CommitGraph map[StackID]map[plumbing.Hash]CommitSet

func (g CommitGraph) add(stack StackID, from, to plumbing.Hash) {
	commits, ok := g[stack]
	if !ok {
		commits = make(map[plumbing.Hash]CommitSet)
		g[stack] = commits
	}
	set, ok := commits[from]
	if !ok {
		set = make(CommitSet)
		commits[from] = set
	}
	set.Add(to)
}

// Dependency names the commit, within its owning stack, whose recorded
// range an uncommitted hunk overlaps.
type Dependency struct {
	StackID  StackID
	CommitID plumbing.Hash
}

// commitRange is one recorded range: the lines a commit touched in a file,
// tagged with the owning stack.
type commitRange struct {
	HunkRange
	stackID  StackID
	commitID plumbing.Hash
}

// stackRanges is one stack's per-path range index. It is built once while
// walking the stack and treated as immutable afterwards; WorkspaceRanges
// merges the read-only views of all stacks.
type stackRanges struct {
	paths map[string][]commitRange
}

// WorkspaceRanges indexes, per file path, every line range any stack commit
// touched, plus the intra-stack commit dependency edges discovered while
// indexing.
type WorkspaceRanges struct {
	paths       map[string][]commitRange
	deps        CommitGraph
	inverseDeps CommitGraph
	errors      []CalculationError
}

// BuildWorkspaceRanges walks every stack from the integration base toward
// its tip, diffing each commit against its immediate predecessor through
// differ. A failure to diff one commit is recorded as a CalculationError
// and that commit is skipped; indexing continues.
func BuildWorkspaceRanges(differ CommitDiffer, stacks []InputStack, base plumbing.Hash) *WorkspaceRanges {
	ws := &WorkspaceRanges{
		paths:       make(map[string][]commitRange),
		deps:        make(CommitGraph),
		inverseDeps: make(CommitGraph),
	}

	for _, stack := range stacks {
		ranges := stackRanges{paths: make(map[string][]commitRange)}
		parent := base
		if !stack.Base.IsZero() {
			parent = stack.Base
		}
		for _, commit := range stack.Commits {
			changes, err := differ.CommitChanges(commit, parent)
			// The skipped commit is still the predecessor of the next one.
			parent = commit
			if err != nil {
				ws.errors = append(ws.errors, CalculationError{
					Kind:     ErrKindCommitDiff,
					StackID:  stack.ID,
					CommitID: commit.String(),
					Message:  err.Error(),
				})
				continue
			}
			for _, change := range changes {
				ranges.add(stack.ID, commit, change, ws)
			}
		}
		for path, recorded := range ranges.paths {
			ws.paths[path] = append(ws.paths[path], recorded...)
		}
	}

	return ws
}

// add records one commit's ranges for one path and derives dependency edges
// against ranges earlier commits of the same stack recorded for that path.
func (s *stackRanges) add(stack StackID, commit plumbing.Hash, change FileChange, ws *WorkspaceRanges) {
	for _, rng := range change.Ranges {
		for _, earlier := range s.paths[change.Path] {
			if earlier.commitID == commit || !rng.Touches(earlier.HunkRange) {
				continue
			}
			ws.deps.add(stack, commit, earlier.commitID)
			ws.inverseDeps.add(stack, earlier.commitID, commit)
		}
		s.paths[change.Path] = append(s.paths[change.Path], commitRange{
			HunkRange: rng,
			stackID:   stack,
			commitID:  commit,
		})
	}
}

// Intersection returns the distinct (stack, commit) pairs whose recorded
// range for path overlaps the half-open query range. An empty result means
// the hunk is free, not an error. Result order follows recording order and
// carries no meaning.
func (w *WorkspaceRanges) Intersection(path string, start, lines int) []Dependency {
	query := HunkRange{Start: start, Lines: lines}
	var result []Dependency
	seen := make(map[Dependency]struct{})
	for _, recorded := range w.paths[path] {
		if !query.Overlaps(recorded.HunkRange) {
			continue
		}
		dep := Dependency{StackID: recorded.stackID, CommitID: recorded.commitID}
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		result = append(result, dep)
	}
	return result
}

// CommitDependencies returns the forward and inverse intra-stack commit
// dependency graphs accumulated during indexing.
func (w *WorkspaceRanges) CommitDependencies() (forward, inverse CommitGraph) {
	return w.deps, w.inverseDeps
}

// Errors returns the recoverable failures collected during indexing.
func (w *WorkspaceRanges) Errors() []CalculationError {
	return w.errors
}
