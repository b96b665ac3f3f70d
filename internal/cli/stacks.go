package cli

import (
	"github.com/spf13/cobra"
)

func newStacksCmd(opts *options) *cobra.Command {
	var projectID string
	var jsonOut bool

	stacksCmd := &cobra.Command{
		Use:   "stacks",
		Short: "List the stacks of a project's workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.service()
			if err != nil {
				return err
			}
			entries, calcErrs, err := svc.Stacks(projectID)
			if err != nil {
				return err
			}
			printCalcErrors(calcErrs)
			if jsonOut {
				return printJSON(entries)
			}
			opts.formatter().Stacks(entries)
			return nil
		},
	}

	stacksCmd.Flags().StringVar(&projectID, "project", "", "project id")
	stacksCmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	_ = stacksCmd.MarkFlagRequired("project")
	return stacksCmd
}
