package cli

import (
	"github.com/spf13/cobra"
)

func newBranchesCmd(opts *options) *cobra.Command {
	var projectID string
	var stackID string
	var jsonOut bool

	branchesCmd := &cobra.Command{
		Use:   "branches",
		Short: "List the named branches within one stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.service()
			if err != nil {
				return err
			}
			branches, err := svc.StackBranches(projectID, stackID)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(branches)
			}
			opts.formatter().Branches(branches)
			return nil
		},
	}

	branchesCmd.Flags().StringVar(&projectID, "project", "", "project id")
	branchesCmd.Flags().StringVar(&stackID, "stack", "", "stack id")
	branchesCmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	_ = branchesCmd.MarkFlagRequired("project")
	_ = branchesCmd.MarkFlagRequired("stack")
	return branchesCmd
}
