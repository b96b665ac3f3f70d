package deps

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HunkHash is the 64-bit identity of a hunk, derived from its zero-context
// patch text with the header line excluded. Two hunks with byte-identical
// patch bodies share a hash even when they sit at different positions or in
// different files; that collision is part of the contract, not a defect.
//
// The hash is computed over zero-context bytes end-to-end. A consumer that
// diffs with context lines cannot correlate its own hashes with these; it
// must re-diff with zero context first.
type HunkHash = uint64

// HashHunk computes the identity of a unified-diff hunk. The input must
// begin with the `@@` header line; anything else is a contract violation by
// the caller.
func HashHunk(patch string) HunkHash {
	if !strings.HasPrefix(patch, "@@") {
		panic("BUG: input must be a unified diff hunk starting with @@")
	}
	body := ""
	if i := strings.IndexByte(patch, '\n'); i >= 0 {
		body = patch[i+1:]
	}
	digest := xxhash.New()
	_, _ = digest.WriteString(body)
	return digest.Sum64()
}
