// Package main provides the opshell CLI entry point.
// opshell is an interactive menu shell for running operational scripts
// grouped into categories, with a confirmation gate in production.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "opshell/internal/checks"   // Import for side effects (plugin registration)
	_ "opshell/internal/examples" // Import for side effects (plugin registration)
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opshell",
		Short: "opshell - interactive operations shell",
		Long: `opshell is an interactive menu for running operational scripts.
Scripts are grouped into categories, searchable, and guarded by a
confirmation prompt in production unless they are marked production-safe.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runShell, // Default behavior is to run the interactive shell
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default: ./opshell.yaml or ~/.config/opshell/opshell.yaml)")
	flags.StringVar(&a.envFile, "env-file", "", "Dotenv file layered under the environment (default: .env)")
	flags.StringVar(&a.logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.StringVar(&a.logFile, "log-file", "", "Write logs to file instead of stderr")
	flags.BoolVar(&a.safeMode, "safe-mode", false, "Skip the production confirmation for unsafe scripts")
	flags.BoolVar(&a.plain, "plain", false, "Disable colours and styling")

	rootCmd.Flags().StringVar(&a.category, "category", "", "Open this category instead of the main menu")
	rootCmd.Flags().StringVar(&a.script, "script", "", "Run one script by name and exit")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive menu",
			Long:  `Start the interactive menu. This is also what opshell does without a subcommand.`,
			RunE:  a.runShell,
		},
		&cobra.Command{
			Use:   "run <script>",
			Short: "Run one script by name and exit",
			Long: `Run one script by name, prompting for its parameters, and exit.
The exit status is non-zero when the script is unknown or fails.`,
			Args: cobra.ExactArgs(1),
			RunE: a.runScript,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List categories and their scripts",
			RunE:  a.runList,
		},
		&cobra.Command{
			Use:   "checks",
			Short: "Run the system checks and print their results",
			Long:  `Run every configured and discovered system check. The exit status is non-zero when a check fails.`,
			RunE:  a.runChecks,
		},
		newVersionCmd(),
	)

	return rootCmd
}
