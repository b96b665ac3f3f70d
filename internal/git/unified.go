package git

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Byron/gitbutler/internal/deps"
)

// unifiedHunks produces the zero-context hunks between two versions of one
// file. Context is deliberately zero everywhere: hunk identities and range
// intersections are defined over zero-context patches.
func unifiedHunks(path string, old, new []byte) ([]deps.Hunk, error) {
	ud := difflib.UnifiedDiff{
		A:        splitLines(old),
		B:        splitLines(new),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  0,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", path, err)
	}
	if text == "" {
		return nil, nil
	}
	return parseUnifiedHunks(text)
}

// splitLines splits content into lines keeping terminators, the shape
// difflib expects. A file without a trailing newline yields a final line
// without one.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isBinary reports whether content looks like binary data. Same heuristic
// git uses: a NUL byte in the first 8000 bytes.
func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) >= 0
}
