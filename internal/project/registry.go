// Package project resolves opaque project identifiers to the two paths the
// engine needs: the working tree and the project's data directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	buterrors "github.com/Byron/gitbutler/internal/errors"
)

const registryFile = "projects.json"

// Project is one registered working tree.
type Project struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Registry persists known projects under a root directory as a JSON list.
type Registry struct {
	root string
}

// NewRegistry creates a registry rooted at root. An empty root falls back
// to BUT_CONFIG_DIR, then to the user config directory.
func NewRegistry(root string) (*Registry, error) {
	if root == "" {
		root = os.Getenv("BUT_CONFIG_DIR")
	}
	if root == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		root = filepath.Join(configDir, "but")
	}
	return &Registry{root: root}, nil
}

// Root returns the registry's root directory.
func (r *Registry) Root() string {
	return r.root
}

// DataDir returns the metadata directory of a project. Workspace files and
// logs for the project live here, never inside the working tree.
func (r *Registry) DataDir(p *Project) string {
	return filepath.Join(r.root, "projects", p.ID)
}

// Add registers a working tree and returns the new project. The path must
// be an existing directory.
func (r *Registry) Add(path, title string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absPath)
	}
	if title == "" {
		title = filepath.Base(absPath)
	}

	projects, err := r.load()
	if err != nil {
		return nil, err
	}
	project := Project{ID: uuid.NewString(), Title: title, Path: absPath}
	projects = append(projects, project)
	if err := r.save(projects); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.DataDir(&project), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project data dir: %w", err)
	}
	return &project, nil
}

// List returns all registered projects.
func (r *Registry) List() ([]Project, error) {
	return r.load()
}

// Get resolves a project id.
func (r *Registry) Get(id string) (*Project, error) {
	projects, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, buterrors.NewProjectNotFoundError(id)
}

func (r *Registry) load() ([]Project, error) {
	content, err := os.ReadFile(filepath.Join(r.root, registryFile))
	if os.IsNotExist(err) {
		return []Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project registry: %w", err)
	}
	var projects []Project
	if err := json.Unmarshal(content, &projects); err != nil {
		return nil, fmt.Errorf("invalid project registry: %w", err)
	}
	return projects, nil
}

func (r *Registry) save(projects []Project) error {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("failed to create registry dir: %w", err)
	}
	content, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project registry: %w", err)
	}
	path := filepath.Join(r.root, registryFile)
	if err := os.WriteFile(path, append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write project registry: %w", err)
	}
	return nil
}
