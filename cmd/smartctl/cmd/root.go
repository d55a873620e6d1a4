// Package cmd contains the CLI commands for smartctl.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	// Used for flags
	verbose bool
	output  string
	dbPath  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartctl",
	Short: "smartctl - SmartDetect command line",
	Long: `smartctl inspects SmartDetect alerts, applications and reports from
the terminal, either over a server database file or over the built-in
sample data when no database is given.

Examples:
  # Critical alerts that are still open
  smartctl alerts list --severity critical --status new

  # Alerts matching an expression
  smartctl alerts list --expr 'risk_score >= 90 && status != "resolved"'

  # Applications whose name contains "api"
  smartctl apps list --search api --db data/smartdetect.db

  # CSV report for March
  smartctl report export --format csv --from 2026-03-01 --to 2026-03-31`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SmartDetect database file (default: built-in sample data)")
}

// printVerbose prints a message to stderr only if verbose mode is enabled.
func printVerbose(w io.Writer, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
