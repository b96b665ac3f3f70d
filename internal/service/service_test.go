package service_test

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"github.com/Byron/gitbutler/internal/deps"
	buterrors "github.com/Byron/gitbutler/internal/errors"
	"github.com/Byron/gitbutler/internal/project"
	"github.com/Byron/gitbutler/internal/service"
	"github.com/Byron/gitbutler/internal/workspace"
	"github.com/Byron/gitbutler/testhelpers"
)

// fixture is a registered project whose repo has one stack (feature-x, one
// commit changing lines 10-15 of f.txt) on a main integration base.
type fixture struct {
	svc     *service.Service
	repo    *testhelpers.GitRepo
	project *project.Project
	dataDir string
	stackID string
	c1      plumbing.Hash
	lines   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := testhelpers.NewGitRepo(t)
	lines := testhelpers.NumberedLines(60)
	repo.WriteFile("f.txt", testhelpers.Lines(lines...))
	base := repo.Commit("base")

	repo.Branch("feature-x")
	repo.Checkout("feature-x")
	for i := 9; i < 15; i++ {
		lines[i] = "changed " + lines[i]
	}
	repo.WriteFile("f.txt", testhelpers.Lines(lines...))
	c1 := repo.Commit("change lines 10-15")

	registry, err := project.NewRegistry(t.TempDir())
	require.NoError(t, err)
	p, err := registry.Add(repo.Dir, "fixture")
	require.NoError(t, err)
	dataDir := registry.DataDir(p)

	_, err = workspace.Scaffold(dataDir, workspace.Target{BranchName: "main", Sha: base.String()})
	require.NoError(t, err)
	stack, err := workspace.AddStack(dataDir, "feature-x", []string{"feature-x"})
	require.NoError(t, err)

	return &fixture{
		svc:     service.New(registry, nil),
		repo:    repo,
		project: p,
		dataDir: dataDir,
		stackID: stack.ID,
		c1:      c1,
		lines:   lines,
	}
}

// edit rewrites f.txt with the given 1-based lines replaced, leaving the
// change uncommitted.
func (f *fixture) edit(t *testing.T, replacements map[int]string) {
	t.Helper()
	lines := append([]string(nil), f.lines...)
	for n, text := range replacements {
		lines[n-1] = text
	}
	f.repo.WriteFile("f.txt", testhelpers.Lines(lines...))
}

func TestStacks(t *testing.T) {
	f := newFixture(t)

	entries, calcErrs, err := f.svc.Stacks(f.project.ID)
	require.NoError(t, err)
	require.Empty(t, calcErrs)
	require.Len(t, entries, 1)
	require.Equal(t, f.stackID, entries[0].ID)
	require.Len(t, entries[0].Commits, 1)
	require.Equal(t, f.c1.String(), entries[0].Commits[0].ID)

	t.Run("unknown project is fatal", func(t *testing.T) {
		_, _, err := f.svc.Stacks("missing")
		require.ErrorIs(t, err, buterrors.ErrProjectNotFound)
	})
}

func TestStackBranches(t *testing.T) {
	f := newFixture(t)

	branches, err := f.svc.StackBranches(f.project.ID, f.stackID)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	require.Equal(t, "feature-x", branches[0].Name)
	require.Equal(t, f.c1.String(), branches[0].Head)

	_, err = f.svc.StackBranches(f.project.ID, "missing")
	require.ErrorIs(t, err, buterrors.ErrStackNotFound)
}

func TestHunkDependencies(t *testing.T) {
	t.Run("overlapping edit locks to the commit", func(t *testing.T) {
		f := newFixture(t)
		f.edit(t, map[int]string{12: "edited 12", 13: "edited 13"})

		result, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)
		require.Empty(t, result.Errors)
		require.Len(t, result.Diffs, 1)

		locks := result.Diffs[0].Locks
		require.Equal(t, []deps.HunkLock{{
			StackID:  deps.StackID(f.stackID),
			CommitID: f.c1,
		}}, locks)

		hashes := result.CommitDependentDiffs[deps.StackID(f.stackID)][f.c1]
		require.Contains(t, hashes, result.Diffs[0].Hash)
	})

	t.Run("non-overlapping edit is free", func(t *testing.T) {
		f := newFixture(t)
		f.edit(t, map[int]string{50: "edited 50", 51: "edited 51"})

		result, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)
		require.Len(t, result.Diffs, 1)
		require.Empty(t, result.Diffs[0].Locks)
	})

	t.Run("untracked file is analyzed and free", func(t *testing.T) {
		f := newFixture(t)
		f.repo.WriteFile("notes.txt", "scratch\n")

		result, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)
		require.Len(t, result.Diffs, 1)
		require.Empty(t, result.Diffs[0].Locks)
	})

	t.Run("clean worktree yields an empty aggregate", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)
		require.Empty(t, result.Diffs)
		require.Empty(t, result.Errors)
	})

	t.Run("called twice returns identical results", func(t *testing.T) {
		f := newFixture(t)
		f.edit(t, map[int]string{12: "edited 12", 50: "edited 50"})

		first, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)
		second, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)

		require.Equal(t, first.Diffs, second.Diffs)
		require.Equal(t, first.CommitDependencies, second.CommitDependencies)
		require.Equal(t, first.InverseCommitDependencies, second.InverseCommitDependencies)
	})

	t.Run("broken stack metadata degrades, not fails", func(t *testing.T) {
		f := newFixture(t)
		_, err := workspace.AddStack(f.dataDir, "broken", []string{"gone"})
		require.NoError(t, err)
		f.edit(t, map[int]string{12: "edited 12"})

		result, err := f.svc.HunkDependencies(f.project.ID)
		require.NoError(t, err)
		require.NotEmpty(t, result.Errors)
		require.Equal(t, deps.ErrKindStackMeta, result.Errors[0].Kind)
		// The healthy stack still produced its lock.
		require.Len(t, result.Diffs, 1)
		require.Len(t, result.Diffs[0].Locks, 1)
	})
}
