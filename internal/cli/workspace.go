package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Byron/gitbutler/internal/git"
	"github.com/Byron/gitbutler/internal/workspace"
)

func newWorkspaceCmd(opts *options) *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage a project's workspace metadata",
	}
	workspaceCmd.AddCommand(newWorkspaceInitCmd(opts))
	workspaceCmd.AddCommand(newWorkspaceTrackCmd(opts))
	return workspaceCmd
}

func newWorkspaceInitCmd(opts *options) *cobra.Command {
	var projectID string
	var target string

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize workspace metadata with an integration base",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := opts.service()
			if err != nil {
				return err
			}
			p, err := registry.Get(projectID)
			if err != nil {
				return err
			}
			repo, err := git.Open(p.Path)
			if err != nil {
				return err
			}
			sha, err := repo.ResolveBranch(target)
			if err != nil {
				return err
			}
			_, err = workspace.Scaffold(registry.DataDir(p), workspace.Target{
				BranchName: target,
				Sha:        sha.String(),
			})
			if err != nil {
				return err
			}
			fmt.Printf("workspace initialized on %s (%s)\n", target, sha)
			return nil
		},
	}

	initCmd.Flags().StringVar(&projectID, "project", "", "project id")
	initCmd.Flags().StringVar(&target, "target", "main", "integration base branch")
	_ = initCmd.MarkFlagRequired("project")
	return initCmd
}

func newWorkspaceTrackCmd(opts *options) *cobra.Command {
	var projectID string
	var name string
	var branches []string

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Track branches as a new stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := opts.service()
			if err != nil {
				return err
			}
			p, err := registry.Get(projectID)
			if err != nil {
				return err
			}
			if name == "" && len(branches) > 0 {
				name = branches[len(branches)-1]
			}
			stack, err := workspace.AddStack(registry.DataDir(p), name, branches)
			if err != nil {
				return err
			}
			fmt.Printf("tracking stack %s (%s)\n", stack.Name, stack.ID)
			return nil
		},
	}

	trackCmd.Flags().StringVar(&projectID, "project", "", "project id")
	trackCmd.Flags().StringVar(&name, "name", "", "stack name (default: topmost branch)")
	trackCmd.Flags().StringArrayVar(&branches, "branch", nil, "branch in stack order, bottom first (repeatable)")
	_ = trackCmd.MarkFlagRequired("project")
	_ = trackCmd.MarkFlagRequired("branch")
	return trackCmd
}
