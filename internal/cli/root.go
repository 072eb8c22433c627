// Package cli provides the command-line interface for capreport.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/capreport/internal/cli/commands"
	"github.com/ccollicutt/capreport/internal/logging"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand())
}

func run(rootCmd *cobra.Command) int {
	commands.ExitCode = 0

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "capreport",
		Short: "Render capability match results as an indented report",
		Long: `capreport renders the result document of a capability matcher as a
human-readable report: one section per matched rule with its metadata and
the tree of statements and features that satisfied it, down to the
addresses where each feature was observed.

Configuration is read from --config or, when absent, from
$XDG_CONFIG_HOME/capreport/config.yaml (or config.toml).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), verbosity)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default: XDG config dir)")

	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
