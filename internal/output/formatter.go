package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Byron/gitbutler/internal/deps"
	"github.com/Byron/gitbutler/internal/workspace"
)

// Formatter writes human-readable command output.
type Formatter struct {
	writer io.Writer
	color  bool
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer, color bool) *Formatter {
	return &Formatter{writer: w, color: color}
}

func (f *Formatter) styled(text string, style lipgloss.Style) string {
	if !f.color {
		return text
	}
	return style.Render(text)
}

func (f *Formatter) stackName(name string, index int) string {
	return f.styled(name, lipgloss.NewStyle().Foreground(StackColor(index)).Bold(true))
}

func (f *Formatter) dim(text string) string {
	return f.styled(text, lipgloss.NewStyle().Faint(true))
}

// Stacks renders the stack listing, one block per stack with its commits
// tip first.
func (f *Formatter) Stacks(entries []workspace.StackEntry) {
	for i, entry := range entries {
		fmt.Fprintf(f.writer, "%s %s\n", f.stackName(entry.Name, i), f.dim("("+entry.ID+")"))
		for _, commit := range entry.Commits {
			subject := strings.SplitN(strings.TrimSpace(commit.Message), "\n", 2)[0]
			fmt.Fprintf(f.writer, "  ◯ %s %s\n", shortID(commit.ID), subject)
		}
		if len(entry.Commits) == 0 {
			fmt.Fprintf(f.writer, "  %s\n", f.dim("(no commits)"))
		}
	}
}

// Branches renders the branch listing of one stack.
func (f *Formatter) Branches(branches []workspace.Branch) {
	for _, branch := range branches {
		name := branch.Name
		if branch.Archived {
			name = f.dim(name + " (archived)")
		}
		fmt.Fprintf(f.writer, "%s %s\n", name, f.dim(shortID(branch.Head)))
	}
}

// Dependencies renders the hunk dependency aggregate: every analyzed hunk
// with its locks, then the per-stack commit edges.
func (f *Formatter) Dependencies(result *deps.HunkDependencies, stacks []workspace.StackEntry) {
	stackNames := make(map[deps.StackID]string, len(stacks))
	stackIndex := make(map[deps.StackID]int, len(stacks))
	for i, entry := range stacks {
		stackNames[deps.StackID(entry.ID)] = entry.Name
		stackIndex[deps.StackID(entry.ID)] = i
	}

	for _, diff := range result.Diffs {
		fmt.Fprintf(f.writer, "hunk %016x\n", diff.Hash)
		if len(diff.Locks) == 0 {
			fmt.Fprintf(f.writer, "  %s\n", f.dim("free"))
			continue
		}
		for _, lock := range diff.Locks {
			name := stackNames[lock.StackID]
			if name == "" {
				name = string(lock.StackID)
			}
			fmt.Fprintf(f.writer, "  locked to %s %s\n",
				f.stackName(name, stackIndex[lock.StackID]),
				shortID(lock.CommitID.String()))
		}
	}

	for stackID, commits := range result.CommitDependencies {
		for commit, dependsOn := range commits {
			for earlier := range dependsOn {
				fmt.Fprintf(f.writer, "%s: %s depends on %s\n",
					f.stackName(stackNames[stackID], stackIndex[stackID]),
					shortID(commit.String()), shortID(earlier.String()))
			}
		}
	}
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
