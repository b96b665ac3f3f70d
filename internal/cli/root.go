// Package cli wires the cobra command tree. Commands are thin: they
// resolve flags, call the service layer and render the result.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Byron/gitbutler/internal/deps"
	"github.com/Byron/gitbutler/internal/logging"
	"github.com/Byron/gitbutler/internal/output"
	"github.com/Byron/gitbutler/internal/project"
	"github.com/Byron/gitbutler/internal/service"
)

// options holds the persistent flags shared by all commands.
type options struct {
	configDir string
	debug     bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "but",
		Short:        "but tracks dependencies between uncommitted changes and the commits of parallel branch stacks",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "registry directory (default: user config dir, or BUT_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newProjectCmd(opts))
	rootCmd.AddCommand(newWorkspaceCmd(opts))
	rootCmd.AddCommand(newStacksCmd(opts))
	rootCmd.AddCommand(newBranchesCmd(opts))
	rootCmd.AddCommand(newDepsCmd(opts))

	return rootCmd
}

// service builds the registry-backed service for one command invocation.
func (o *options) service() (*service.Service, *project.Registry, error) {
	registry, err := project.NewRegistry(o.configDir)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(o.debug, filepath.Join(registry.Root(), "logs", "but.log"))
	return service.New(registry, log), registry, nil
}

// formatter builds the human-readable renderer for stdout.
func (o *options) formatter() *output.Formatter {
	return output.NewFormatter(os.Stdout, output.ColorEnabled())
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printCalcErrors surfaces recoverable calculation errors as diagnostics on
// stderr without blocking the rendered result.
func printCalcErrors(errs []deps.CalculationError) {
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err.Error())
	}
}
