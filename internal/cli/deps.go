package cli

import (
	"github.com/spf13/cobra"
)

func newDepsCmd(opts *options) *cobra.Command {
	var projectID string
	var jsonOut bool

	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "Show which stack commits the uncommitted hunks are locked to",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.service()
			if err != nil {
				return err
			}
			result, err := svc.HunkDependencies(projectID)
			if err != nil {
				return err
			}
			// Render the available result even when some calculations
			// failed; the failures are diagnostics, not a blocker.
			printCalcErrors(result.Errors)
			if jsonOut {
				return printJSON(result)
			}
			entries, _, err := svc.Stacks(projectID)
			if err != nil {
				return err
			}
			opts.formatter().Dependencies(result, entries)
			return nil
		},
	}

	depsCmd.Flags().StringVar(&projectID, "project", "", "project id")
	depsCmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	_ = depsCmd.MarkFlagRequired("project")
	return depsCmd
}
