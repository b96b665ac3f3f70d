package deps

import "fmt"

// Kinds of recoverable calculation failures.
const (
	ErrKindCommitDiff = "commit-diff"
	ErrKindStackMeta  = "stack-metadata"
	ErrKindPathRanges = "path-ranges"
)

// CalculationError is a recoverable failure scoped to one stack, commit or
// path. It is collected in the result instead of aborting the computation,
// so callers can render what did succeed and surface the rest as
// diagnostics.
type CalculationError struct {
	Kind     string  `json:"kind"`
	StackID  StackID `json:"stackId,omitempty"`
	CommitID string  `json:"commitId,omitempty"`
	Path     string  `json:"path,omitempty"`
	Message  string  `json:"message"`
}

func (e CalculationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StackID != "" {
		msg += fmt.Sprintf(" (stack %s)", e.StackID)
	}
	if e.CommitID != "" {
		msg += fmt.Sprintf(" (commit %s)", e.CommitID)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (path %s)", e.Path)
	}
	return msg
}
