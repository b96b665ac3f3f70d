// Package errors provides sentinel errors and custom error types for the
// but application. Use errors.Is() and errors.As() to check for specific
// error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrProjectNotFound indicates that a project id is not in the registry
	ErrProjectNotFound = errors.New("project not found")

	// ErrStackNotFound indicates that a stack id is not in the workspace
	ErrStackNotFound = errors.New("stack not found")

	// ErrNoWorkspace indicates that a project has no workspace metadata yet
	ErrNoWorkspace = errors.New("no workspace configured")

	// ErrWorkspaceExists indicates that workspace metadata already exists
	ErrWorkspaceExists = errors.New("workspace already configured")
)

// ProjectNotFoundError represents an error when a project id cannot be resolved
type ProjectNotFoundError struct {
	ProjectID string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project %s does not exist", e.ProjectID)
}

// Is returns true if the target error is ErrProjectNotFound
func (e *ProjectNotFoundError) Is(target error) bool {
	return target == ErrProjectNotFound
}

// NewProjectNotFoundError creates a new ProjectNotFoundError
func NewProjectNotFoundError(projectID string) *ProjectNotFoundError {
	return &ProjectNotFoundError{ProjectID: projectID}
}

// StackNotFoundError represents an error when a stack id is not part of the workspace
type StackNotFoundError struct {
	StackID string
}

func (e *StackNotFoundError) Error() string {
	return fmt.Sprintf("stack %s does not exist in this workspace", e.StackID)
}

// Is returns true if the target error is ErrStackNotFound
func (e *StackNotFoundError) Is(target error) bool {
	return target == ErrStackNotFound
}

// NewStackNotFoundError creates a new StackNotFoundError
func NewStackNotFoundError(stackID string) *StackNotFoundError {
	return &StackNotFoundError{StackID: stackID}
}

// WorkspaceError represents a fatal failure reading or writing workspace metadata
type WorkspaceError struct {
	DataDir string
	Err     error
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("workspace metadata at %s: %v", e.DataDir, e.Err)
}

func (e *WorkspaceError) Unwrap() error {
	return e.Err
}

// NewWorkspaceError creates a new WorkspaceError
func NewWorkspaceError(dataDir string, err error) *WorkspaceError {
	return &WorkspaceError{DataDir: dataDir, Err: err}
}
