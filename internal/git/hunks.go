package git

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Byron/gitbutler/internal/deps"
)

// Matches hunk headers: @@ -old_start,old_count +new_start,new_count @@
// Counts are omitted when 1, e.g. @@ -10 +10,2 @@.
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// parseUnifiedHunks splits the unified diff of a single file into hunks,
// preserving each hunk's literal text byte for byte (header line first).
// File header lines (---/+++) are dropped.
func parseUnifiedHunks(text string) ([]deps.Hunk, error) {
	var hunks []deps.Hunk
	var current *deps.Hunk
	var patch strings.Builder

	flush := func() {
		if current != nil {
			current.Patch = patch.String()
			hunks = append(hunks, *current)
			current = nil
			patch.Reset()
		}
	}

	for _, line := range splitLines([]byte(text)) {
		trimmed := strings.TrimSuffix(line, "\n")
		if match := hunkHeaderRegex.FindStringSubmatch(trimmed); match != nil {
			flush()
			current = &deps.Hunk{
				OldStart: parseNum(match[1], 0),
				OldLines: parseNum(match[2], 1),
				NewStart: parseNum(match[3], 0),
				NewLines: parseNum(match[4], 1),
			}
			patch.WriteString(line)
			continue
		}
		if current == nil {
			if strings.HasPrefix(trimmed, "---") || strings.HasPrefix(trimmed, "+++") {
				continue
			}
			return nil, fmt.Errorf("unexpected line outside hunk: %q", trimmed)
		}
		patch.WriteString(line)
	}
	flush()

	return hunks, nil
}

// parseNum parses a hunk-header count, using fallback when the count was
// omitted (unified diffs omit ",1").
func parseNum(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
