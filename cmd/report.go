// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-traffic/internal/config"
	"github.com/naka-gawa/github-traffic/internal/domain"
	"github.com/naka-gawa/github-traffic/internal/gateway"
	"github.com/naka-gawa/github-traffic/internal/renderer"
	"github.com/naka-gawa/github-traffic/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Builds the repository traffic report",
	Long: `Fetches views, clones, stars and forks for every repository owned by the
configured account (GITHUB_USER / GITHUB_TOKEN, .env supported), aggregates
them over the requested timeframe, and prints a sorted report.

Inaccessible repositories are skipped with a warning. Any other failure
aborts the run with a non-zero exit code.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		opts := reportOptionsFromFlags(cmd)

		// Validate before constructing any client, so bad input never
		// costs a network call.
		if err := opts.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		reporter := usecase.NewReporter(githubGateway, logger)

		summaries, skipped, err := reporter.BuildReport(ctx, cfg.Owner, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build report: %v\n", err)
			os.Exit(1)
		}
		for _, name := range skipped {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: repository or its traffic data is not accessible\n", name)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			if err := renderer.RenderJSON(os.Stdout, summaries); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		} else {
			renderer.RenderTable(os.Stdout, summaries, opts, usecase.Summarize(summaries))
		}

		if opts.WriteCSV {
			path := renderer.CSVFileName(time.Now())
			if err := renderer.WriteCSV(path, summaries); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Traffic data saved to %s\n", path)
		}
	},
}

// reportOptionsFromFlags collects the flag values into report options.
// Validation happens separately so flag parsing never talks to the network.
func reportOptionsFromFlags(cmd *cobra.Command) domain.ReportOptions {
	opts := domain.DefaultReportOptions()
	opts.HideEmpty, _ = cmd.Flags().GetBool("hide-empty")
	opts.ExcludeZeroViews, _ = cmd.Flags().GetBool("no-zero-views")
	opts.WriteCSV, _ = cmd.Flags().GetBool("write-csv")
	sortBy, _ := cmd.Flags().GetString("sort-by")
	opts.SortBy = domain.SortKey(sortBy)
	opts.TimeframeDays, _ = cmd.Flags().GetInt("timeframe")
	return opts
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolP("hide-empty", "e", false, "Hide repositories with all metrics equal to zero")
	reportCmd.Flags().BoolP("no-zero-views", "z", false, "Exclude repositories with zero views from the output")
	reportCmd.Flags().BoolP("write-csv", "c", false, "Write results to a date-stamped CSV file")
	reportCmd.Flags().StringP("sort-by", "s", string(domain.SortByCombinedMetrics), "Sort results by a specific metric")
	reportCmd.Flags().IntP("timeframe", "t", domain.DefaultTimeframeDays, "Timeframe for the report in days (GitHub API maximum: 14)")
	reportCmd.Flags().Bool("json", false, "Output the report as JSON instead of a table")
}
