package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// NewRootCommand builds the fairalloc command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fairalloc",
		Short: "fairalloc - divide indivisible items among agents",
		Long: `fairalloc reads agents' valuations of indivisible items and divides the
items among the agents with a fair-division algorithm.

Valuations are YAML or JSON: a mapping of agent to item values, a mapping of
agent to a value list, or a plain matrix.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		// Unknown flags fail instead of being ignored.
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}
	root.AddCommand(newAllocateCommand(), newAlgorithmsCommand())

	return root
}

var rootCmd = NewRootCommand()

// Execute runs the root command. Errors have already been printed by the
// printer package when it returns.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
