package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	buterrors "github.com/Byron/gitbutler/internal/errors"
	"github.com/Byron/gitbutler/internal/workspace"
)

func TestMetadataFile(t *testing.T) {
	t.Run("load fails without metadata", func(t *testing.T) {
		_, err := workspace.Load(t.TempDir())
		require.ErrorIs(t, err, buterrors.ErrNoWorkspace)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		dataDir := t.TempDir()
		file := &workspace.File{
			Target: workspace.Target{BranchName: "main", Sha: "abc123"},
			Stacks: []workspace.StackConfig{{
				ID:   "stack-1",
				Name: "feature",
				Branches: []workspace.BranchRef{
					{Name: "feature-base"},
					{Name: "feature-top"},
				},
			}},
		}
		require.NoError(t, workspace.Save(dataDir, file))

		loaded, err := workspace.Load(dataDir)
		require.NoError(t, err)
		require.Equal(t, file, loaded)
	})

	t.Run("scaffold refuses to overwrite", func(t *testing.T) {
		dataDir := t.TempDir()
		_, err := workspace.Scaffold(dataDir, workspace.Target{BranchName: "main", Sha: "abc"})
		require.NoError(t, err)
		_, err = workspace.Scaffold(dataDir, workspace.Target{BranchName: "main", Sha: "abc"})
		require.ErrorIs(t, err, buterrors.ErrWorkspaceExists)
	})

	t.Run("add stack assigns a fresh id", func(t *testing.T) {
		dataDir := t.TempDir()
		_, err := workspace.Scaffold(dataDir, workspace.Target{BranchName: "main", Sha: "abc"})
		require.NoError(t, err)

		stack, err := workspace.AddStack(dataDir, "feature", []string{"feature"})
		require.NoError(t, err)
		require.NotEmpty(t, stack.ID)

		other, err := workspace.AddStack(dataDir, "other", []string{"other"})
		require.NoError(t, err)
		require.NotEqual(t, stack.ID, other.ID)

		file, err := workspace.Load(dataDir)
		require.NoError(t, err)
		require.Len(t, file.Stacks, 2)
	})
}

func TestStackConfigTip(t *testing.T) {
	stack := workspace.StackConfig{Branches: []workspace.BranchRef{
		{Name: "bottom"},
		{Name: "middle"},
		{Name: "top", Archived: true},
	}}
	require.Equal(t, "middle", stack.Tip())

	empty := workspace.StackConfig{}
	require.Equal(t, "", empty.Tip())
}
