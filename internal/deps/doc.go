// Package deps is the hunk/commit dependency engine. It indexes the line
// ranges every stack commit touched, intersects them against the current
// uncommitted diff and assembles, per stack, which commits a hunk is locked
// to and which commits depend on each other.
//
// The package has no knowledge of any concrete object store; repository
// access comes in through the CommitDiffer capability and the extracted
// worktree changes are plain values. Recoverable failures during indexing
// are collected as CalculationErrors so callers always get a best-effort
// result.
package deps
