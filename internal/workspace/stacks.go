package workspace

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/Byron/gitbutler/internal/deps"
	buterrors "github.com/Byron/gitbutler/internal/errors"
	"github.com/Byron/gitbutler/internal/git"
)

// CommitSummary describes one stack commit for listing purposes.
type CommitSummary struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// StackEntry is one stack with its resolved commits, tip first. Base is the
// fork point the commits were walked down to.
type StackEntry struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Tip     string          `json:"tip"`
	Base    string          `json:"base"`
	Commits []CommitSummary `json:"commits"`
}

// Branch is one named branch within a stack.
type Branch struct {
	Name     string `json:"name"`
	Head     string `json:"head"`
	Archived bool   `json:"archived,omitempty"`
}

// Stacks lists all stacks of the workspace with their commits resolved by
// walking each tip down to the integration base. A stack whose tip cannot
// be resolved or walked is reported as a CalculationError and skipped; the
// remaining stacks still list.
func Stacks(repo *git.Repository, dataDir string) ([]StackEntry, []deps.CalculationError, error) {
	file, err := Load(dataDir)
	if err != nil {
		return nil, nil, err
	}
	base := plumbing.NewHash(file.Target.Sha)

	entries := make([]StackEntry, 0, len(file.Stacks))
	var calcErrs []deps.CalculationError
	for _, stack := range file.Stacks {
		entry, err := resolveStack(repo, stack, base)
		if err != nil {
			calcErrs = append(calcErrs, deps.CalculationError{
				Kind:    deps.ErrKindStackMeta,
				StackID: deps.StackID(stack.ID),
				Message: err.Error(),
			})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, calcErrs, nil
}

func resolveStack(repo *git.Repository, stack StackConfig, base plumbing.Hash) (StackEntry, error) {
	entry := StackEntry{ID: stack.ID, Name: stack.Name, Tip: stack.Tip()}
	if entry.Tip == "" {
		return entry, nil
	}
	head, err := repo.ResolveBranch(entry.Tip)
	if err != nil {
		return StackEntry{}, err
	}
	// Walk down to the actual fork point, not the recorded target sha: the
	// target branch may have advanced since the workspace was scaffolded.
	if mergeBase, err := repo.MergeBase(head, base); err == nil {
		base = mergeBase
	}
	entry.Base = base.String()
	commits, err := repo.CommitsBetween(head, base)
	if err != nil {
		return StackEntry{}, err
	}
	for _, commit := range commits {
		entry.Commits = append(entry.Commits, CommitSummary{
			ID:        commit.Hash.String(),
			Message:   commit.Message,
			Author:    commit.Author.Name,
			CreatedAt: commit.Author.When,
		})
	}
	return entry, nil
}

// StackBranches lists the named branches of one stack with their resolved
// heads.
func StackBranches(repo *git.Repository, dataDir, stackID string) ([]Branch, error) {
	file, err := Load(dataDir)
	if err != nil {
		return nil, err
	}
	for _, stack := range file.Stacks {
		if stack.ID != stackID {
			continue
		}
		branches := make([]Branch, 0, len(stack.Branches))
		for _, ref := range stack.Branches {
			branch := Branch{Name: ref.Name, Archived: ref.Archived}
			if head, err := repo.ResolveBranch(ref.Name); err == nil {
				branch.Head = head.String()
			}
			branches = append(branches, branch)
		}
		return branches, nil
	}
	return nil, buterrors.NewStackNotFoundError(stackID)
}

// InputStacks converts resolved stack entries into the engine's input
// model: commits reordered base to tip.
func InputStacks(entries []StackEntry) []deps.InputStack {
	inputs := make([]deps.InputStack, 0, len(entries))
	for _, entry := range entries {
		input := deps.InputStack{ID: deps.StackID(entry.ID), Base: plumbing.NewHash(entry.Base)}
		for i := len(entry.Commits) - 1; i >= 0; i-- {
			input.Commits = append(input.Commits, plumbing.NewHash(entry.Commits[i].ID))
		}
		inputs = append(inputs, input)
	}
	return inputs
}
