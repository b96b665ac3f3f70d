// Package workspace reads the stack layout of a project: which branch
// lines are active in the shared working tree, their commits and the
// integration base they are all built on.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	buterrors "github.com/Byron/gitbutler/internal/errors"
)

const metadataFile = "workspace.json"

// Target is the integration base all stacks are considered built upon.
type Target struct {
	BranchName string `json:"branchName"`
	Sha        string `json:"sha"`
}

// BranchRef is one named branch within a stack.
type BranchRef struct {
	Name     string `json:"name"`
	Archived bool   `json:"archived,omitempty"`
}

// StackConfig is one stack as persisted: an id, a display name and its
// branches ordered bottom to top. The head of the last non-archived branch
// is the stack tip.
type StackConfig struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Branches []BranchRef `json:"branches"`
}

// Tip returns the name of the topmost non-archived branch, or "".
func (s StackConfig) Tip() string {
	for i := len(s.Branches) - 1; i >= 0; i-- {
		if !s.Branches[i].Archived {
			return s.Branches[i].Name
		}
	}
	return ""
}

// File is the workspace metadata persisted in a project's data directory.
type File struct {
	Target Target        `json:"target"`
	Stacks []StackConfig `json:"stacks"`
}

// Load reads the workspace metadata from dataDir.
func Load(dataDir string) (*File, error) {
	content, err := os.ReadFile(filepath.Join(dataDir, metadataFile))
	if os.IsNotExist(err) {
		return nil, buterrors.ErrNoWorkspace
	}
	if err != nil {
		return nil, buterrors.NewWorkspaceError(dataDir, err)
	}
	var file File
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, buterrors.NewWorkspaceError(dataDir, fmt.Errorf("invalid metadata: %w", err))
	}
	return &file, nil
}

// Save writes the workspace metadata to dataDir, creating it if needed.
func Save(dataDir string, file *File) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return buterrors.NewWorkspaceError(dataDir, err)
	}
	content, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return buterrors.NewWorkspaceError(dataDir, err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, metadataFile), append(content, '\n'), 0o644); err != nil {
		return buterrors.NewWorkspaceError(dataDir, err)
	}
	return nil
}

// Scaffold writes a fresh workspace file with the given target and no
// stacks. It refuses to overwrite existing metadata.
func Scaffold(dataDir string, target Target) (*File, error) {
	if _, err := Load(dataDir); err == nil {
		return nil, buterrors.ErrWorkspaceExists
	}
	file := &File{Target: target, Stacks: []StackConfig{}}
	if err := Save(dataDir, file); err != nil {
		return nil, err
	}
	return file, nil
}

// AddStack appends a new stack tracking the given branches and persists the
// metadata. The stack id is a fresh uuid.
func AddStack(dataDir string, name string, branches []string) (*StackConfig, error) {
	file, err := Load(dataDir)
	if err != nil {
		return nil, err
	}
	stack := StackConfig{ID: uuid.NewString(), Name: name}
	for _, branch := range branches {
		stack.Branches = append(stack.Branches, BranchRef{Name: branch})
	}
	file.Stacks = append(file.Stacks, stack)
	if err := Save(dataDir, file); err != nil {
		return nil, err
	}
	return &stack, nil
}
