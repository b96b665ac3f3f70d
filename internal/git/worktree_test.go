package git_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"github.com/Byron/gitbutler/internal/deps"
	"github.com/Byron/gitbutler/internal/git"
	"github.com/Byron/gitbutler/testhelpers"
)

func TestOpen(t *testing.T) {
	t.Run("opens an existing repository", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)
		require.Equal(t, fixture.Dir, repo.Root())
	})

	t.Run("fails on a non-repository", func(t *testing.T) {
		_, err := git.Open(t.TempDir())
		require.Error(t, err)
	})
}

func TestWorktreeChanges(t *testing.T) {
	t.Run("clean worktree has no changes", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)

		changes, calcErrs, err := repo.WorktreeChanges()
		require.NoError(t, err)
		require.Empty(t, calcErrs)
		require.Empty(t, changes)
	})

	t.Run("modified lines become zero-context hunks", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		lines := testhelpers.NumberedLines(30)
		fixture.WriteFile("f.txt", testhelpers.Lines(lines...))
		fixture.Commit("add f.txt")

		lines[11] = "changed 12"
		lines[12] = "changed 13"
		fixture.WriteFile("f.txt", testhelpers.Lines(lines...))

		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)
		changes, calcErrs, err := repo.WorktreeChanges()
		require.NoError(t, err)
		require.Empty(t, calcErrs)

		require.Len(t, changes, 1)
		require.Equal(t, "f.txt", changes[0].Path)
		require.Len(t, changes[0].Hunks, 1)
		hunk := changes[0].Hunks[0]
		require.Equal(t, 12, hunk.OldStart)
		require.Equal(t, 2, hunk.OldLines)
		require.True(t, strings.HasPrefix(hunk.Patch, "@@"))
	})

	t.Run("new file has a zero-length old range", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		fixture.WriteFile("new.txt", testhelpers.Lines("hello", "world"))

		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)
		changes, calcErrs, err := repo.WorktreeChanges()
		require.NoError(t, err)
		require.Empty(t, calcErrs)

		require.Len(t, changes, 1)
		require.Equal(t, "new.txt", changes[0].Path)
		require.Equal(t, 0, changes[0].Hunks[0].OldLines)
	})

	t.Run("binary changes are skipped", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		fixture.WriteFile("blob.bin", "text for now")
		fixture.Commit("add blob")
		fixture.WriteFile("blob.bin", "now\x00binary")

		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)
		changes, calcErrs, err := repo.WorktreeChanges()
		require.NoError(t, err)
		require.Empty(t, calcErrs)
		require.Empty(t, changes)
	})

	t.Run("changes are ordered by path", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		fixture.WriteFile("b.txt", "b\n")
		fixture.WriteFile("a.txt", "a\n")
		fixture.Commit("add files")
		fixture.WriteFile("b.txt", "B\n")
		fixture.WriteFile("a.txt", "A\n")

		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)
		changes, calcErrs, err := repo.WorktreeChanges()
		require.NoError(t, err)
		require.Empty(t, calcErrs)
		require.Len(t, changes, 2)
		require.Equal(t, "a.txt", changes[0].Path)
		require.Equal(t, "b.txt", changes[1].Path)
	})

	t.Run("an unreadable path is reported, others extract", func(t *testing.T) {
		fixture := testhelpers.NewGitRepo(t)
		fixture.WriteFile("a.txt", "a\n")
		fixture.WriteFile("b.txt", "b\n")
		fixture.Commit("add files")
		fixture.WriteFile("a.txt", "A\n")
		// Replace the tracked file with a directory; reading it fails.
		fixture.RemoveFile("b.txt")
		require.NoError(t, os.Mkdir(filepath.Join(fixture.Dir, "b.txt"), 0o755))

		repo, err := git.Open(fixture.Dir)
		require.NoError(t, err)
		changes, calcErrs, err := repo.WorktreeChanges()
		require.NoError(t, err)

		require.Len(t, calcErrs, 1)
		require.Equal(t, deps.ErrKindPathRanges, calcErrs[0].Kind)
		require.Equal(t, "b.txt", calcErrs[0].Path)
		require.Len(t, changes, 1)
		require.Equal(t, "a.txt", changes[0].Path)
	})
}

func TestCommitChanges(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	lines := testhelpers.NumberedLines(30)
	fixture.WriteFile("f.txt", testhelpers.Lines(lines...))
	base := fixture.Commit("base")

	for i := 9; i < 15; i++ {
		lines[i] = "changed " + lines[i]
	}
	fixture.WriteFile("f.txt", testhelpers.Lines(lines...))
	c1 := fixture.Commit("change lines 10-15")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	t.Run("reports the touched ranges in new-file coordinates", func(t *testing.T) {
		changes, err := repo.CommitChanges(c1, base)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		require.Equal(t, "f.txt", changes[0].Path)
		require.Equal(t, []deps.HunkRange{{Start: 10, Lines: 6}}, changes[0].Ranges)
	})

	t.Run("zero parent diffs against the empty tree", func(t *testing.T) {
		changes, err := repo.CommitChanges(base, plumbing.ZeroHash)
		require.NoError(t, err)
		// base introduced .gitkeep's parent content too; find f.txt
		var found bool
		for _, change := range changes {
			if change.Path == "f.txt" {
				found = true
				require.Equal(t, 1, change.Ranges[0].Start)
				require.Equal(t, 30, change.Ranges[0].Lines)
			}
		}
		require.True(t, found)
	})

	t.Run("fails for an unknown commit", func(t *testing.T) {
		_, err := repo.CommitChanges(plumbing.NewHash("0123456789012345678901234567890123456789"), base)
		require.Error(t, err)
	})
}
