// Package service is the synchronous request/response façade over the
// dependency engine. Every operation is keyed by an opaque project id,
// recomputes from current on-disk state and holds no process-wide mutable
// state, so concurrent requests are isolated by construction.
package service

import (
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/Byron/gitbutler/internal/deps"
	"github.com/Byron/gitbutler/internal/git"
	"github.com/Byron/gitbutler/internal/logging"
	"github.com/Byron/gitbutler/internal/project"
	"github.com/Byron/gitbutler/internal/workspace"
)

// Service binds the project registry to the engine's collaborators.
type Service struct {
	projects *project.Registry
	log      logging.Logger
}

// New creates a service over the given registry.
func New(projects *project.Registry, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{projects: projects, log: log}
}

// Stacks lists all stacks of a project's workspace with their commit
// summaries. Stacks that failed to resolve are dropped from the listing;
// the returned calculation errors say which and why.
func (s *Service) Stacks(projectID string) ([]workspace.StackEntry, []deps.CalculationError, error) {
	p, repo, err := s.open(projectID)
	if err != nil {
		return nil, nil, err
	}
	return workspace.Stacks(repo, s.projects.DataDir(p))
}

// StackBranches lists the named branches of one stack.
func (s *Service) StackBranches(projectID, stackID string) ([]workspace.Branch, error) {
	p, repo, err := s.open(projectID)
	if err != nil {
		return nil, err
	}
	return workspace.StackBranches(repo, s.projects.DataDir(p), stackID)
}

// HunkDependencies computes, for every uncommitted hunk of the project's
// working tree, which stack commits it is locked to, plus the per-stack
// commit dependency graphs. Recoverable failures ride in the result's
// Errors list; the rest of the result is best-effort valid.
func (s *Service) HunkDependencies(projectID string) (*deps.HunkDependencies, error) {
	p, repo, err := s.open(projectID)
	if err != nil {
		return nil, err
	}
	dataDir := s.projects.DataDir(p)

	changes, pathErrs, err := repo.WorktreeChanges()
	if err != nil {
		return nil, err
	}

	file, err := workspace.Load(dataDir)
	if err != nil {
		return nil, err
	}
	base := plumbing.NewHash(file.Target.Sha)

	entries, calcErrs, err := workspace.Stacks(repo, dataDir)
	if err != nil {
		return nil, err
	}

	ranges := deps.BuildWorkspaceRanges(repo, workspace.InputStacks(entries), base)
	result := deps.Calculate(changes, ranges)
	result.Errors = append(append(pathErrs, calcErrs...), result.Errors...)

	s.log.Debug("computed hunk dependencies",
		"project", projectID,
		"hunks", len(result.Diffs),
		"errors", len(result.Errors))
	return result, nil
}

func (s *Service) open(projectID string) (*project.Project, *git.Repository, error) {
	p, err := s.projects.Get(projectID)
	if err != nil {
		return nil, nil, err
	}
	repo, err := git.Open(p.Path)
	if err != nil {
		return nil, nil, err
	}
	return p, repo, nil
}
