package deps_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Byron/gitbutler/internal/deps"
)

func TestHashHunk(t *testing.T) {
	t.Run("is stable across calls", func(t *testing.T) {
		patch := "@@ -12,2 +12,2 @@\n-old one\n-old two\n+new one\n+new two\n"
		require.Equal(t, deps.HashHunk(patch), deps.HashHunk(patch))
	})

	t.Run("ignores the header line", func(t *testing.T) {
		body := "-old\n+new\n"
		a := "@@ -10,1 +10,1 @@\n" + body
		b := "@@ -99,1 +99,1 @@\n" + body
		require.Equal(t, deps.HashHunk(a), deps.HashHunk(b))
	})

	t.Run("differs for different bodies", func(t *testing.T) {
		a := "@@ -10,1 +10,1 @@\n-old\n+new\n"
		b := "@@ -10,1 +10,1 @@\n-old\n+other\n"
		require.NotEqual(t, deps.HashHunk(a), deps.HashHunk(b))
	})

	t.Run("line terminators are significant", func(t *testing.T) {
		a := "@@ -10,1 +10,1 @@\n-old\n+new\n"
		b := "@@ -10,1 +10,1 @@\n-old\n+new"
		require.NotEqual(t, deps.HashHunk(a), deps.HashHunk(b))
	})

	t.Run("panics on input without a hunk header", func(t *testing.T) {
		require.Panics(t, func() {
			deps.HashHunk("-old\n+new\n")
		})
	})
}
