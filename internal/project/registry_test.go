package project_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	buterrors "github.com/Byron/gitbutler/internal/errors"
	"github.com/Byron/gitbutler/internal/project"
)

func TestRegistry(t *testing.T) {
	t.Run("add assigns an id and defaults the title", func(t *testing.T) {
		registry, err := project.NewRegistry(t.TempDir())
		require.NoError(t, err)

		dir := t.TempDir()
		p, err := registry.Add(dir, "")
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		require.Equal(t, filepath.Base(dir), p.Title)
		require.Equal(t, dir, p.Path)
		require.DirExists(t, registry.DataDir(p))
	})

	t.Run("get resolves a registered project", func(t *testing.T) {
		registry, err := project.NewRegistry(t.TempDir())
		require.NoError(t, err)
		added, err := registry.Add(t.TempDir(), "demo")
		require.NoError(t, err)

		got, err := registry.Get(added.ID)
		require.NoError(t, err)
		require.Equal(t, added, got)
	})

	t.Run("get fails for an unknown id", func(t *testing.T) {
		registry, err := project.NewRegistry(t.TempDir())
		require.NoError(t, err)

		_, err = registry.Get("missing")
		require.ErrorIs(t, err, buterrors.ErrProjectNotFound)
	})

	t.Run("list returns every registered project", func(t *testing.T) {
		registry, err := project.NewRegistry(t.TempDir())
		require.NoError(t, err)
		_, err = registry.Add(t.TempDir(), "one")
		require.NoError(t, err)
		_, err = registry.Add(t.TempDir(), "two")
		require.NoError(t, err)

		projects, err := registry.List()
		require.NoError(t, err)
		require.Len(t, projects, 2)
	})

	t.Run("add rejects a missing directory", func(t *testing.T) {
		registry, err := project.NewRegistry(t.TempDir())
		require.NoError(t, err)

		_, err = registry.Add(filepath.Join(t.TempDir(), "nope"), "")
		require.Error(t, err)
	})
}
