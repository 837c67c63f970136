// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-traffic",
	Short: "A CLI tool to report GitHub repository traffic.",
	Long: `github-traffic collects traffic and popularity metrics (views, clones,
stars, forks) for every repository owned by a GitHub account, aggregates them
over a trailing window of up to 14 days, and renders a sorted, filterable
report as a console table, JSON, or CSV export.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
