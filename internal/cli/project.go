package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newProjectCmd(opts *options) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage registered projects",
	}
	projectCmd.AddCommand(newProjectAddCmd(opts))
	projectCmd.AddCommand(newProjectListCmd(opts))
	return projectCmd
}

func newProjectAddCmd(opts *options) *cobra.Command {
	var title string

	addCmd := &cobra.Command{
		Use:   "add [path]",
		Short: "Register a working tree as a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			if title == "" && isatty.IsTerminal(os.Stdin.Fd()) {
				prompt := &survey.Input{
					Message: "Choose a title for the project",
				}
				if err := survey.AskOne(prompt, &title); err != nil {
					return fmt.Errorf("canceled")
				}
			}

			_, registry, err := opts.service()
			if err != nil {
				return err
			}
			p, err := registry.Add(path, title)
			if err != nil {
				return err
			}
			fmt.Printf("registered %s as %s (%s)\n", p.Path, p.Title, p.ID)
			return nil
		},
	}

	addCmd.Flags().StringVar(&title, "title", "", "project title (default: directory name)")
	return addCmd
}

func newProjectListCmd(opts *options) *cobra.Command {
	var jsonOut bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := opts.service()
			if err != nil {
				return err
			}
			projects, err := registry.List()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(projects)
			}
			for _, p := range projects {
				fmt.Printf("%s  %s  %s\n", p.ID, p.Title, p.Path)
			}
			return nil
		},
	}

	listCmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return listCmd
}
