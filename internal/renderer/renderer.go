// Package renderer formats a finished report for the console and for export.
package renderer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/naka-gawa/github-traffic/internal/apperr"
	"github.com/naka-gawa/github-traffic/internal/domain"
	"github.com/naka-gawa/github-traffic/internal/usecase"
)

// csvHeader is the column set of the CSV export: raw fields plus the
// derived combined score.
var csvHeader = []string{
	"repository",
	"views_total",
	"views_unique",
	"clones_total",
	"clones_unique",
	"stars",
	"forks",
	"combined_metrics",
}

// RenderTable writes the report as a console table: a title line naming the
// sort key and timeframe, one numbered row per repository, and a footer line
// with the report-wide distribution when there is anything to summarize.
func RenderTable(w io.Writer, summaries []domain.RepositorySummary, opts domain.ReportOptions, dist usecase.Distribution) {
	fmt.Fprintf(w, "Repository traffic, last %d days (sorted by %s)\n", opts.TimeframeDays, opts.SortBy)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Repository", "Views", "Unique Views", "Clones", "Unique Clones", "Stars", "Forks", "Combined"})
	for i, s := range summaries {
		table.Append([]string{
			strconv.Itoa(i + 1),
			s.Name,
			strconv.Itoa(s.ViewsTotal),
			strconv.Itoa(s.ViewsUnique),
			strconv.Itoa(s.ClonesTotal),
			strconv.Itoa(s.ClonesUnique),
			strconv.Itoa(s.Stars),
			strconv.Itoa(s.Forks),
			formatScore(s.CombinedMetrics),
		})
	}
	table.Render()

	if len(summaries) > 0 {
		fmt.Fprintf(w, "%d repositories | mean views %.1f | median views %.1f | top combined score %.1f\n",
			len(summaries), dist.MeanViews, dist.MedianViews, dist.MaxCombined)
	}
}

// RenderJSON writes the report as a pretty-printed JSON array.
func RenderJSON(w io.Writer, summaries []domain.RepositorySummary) error {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// CSVFileName returns the date-stamped export name for a run, e.g.
// github_traffic_20250114.csv. Deterministic for a given day; a rerun on the
// same day overwrites the whole file rather than merging into it.
func CSVFileName(now time.Time) string {
	return fmt.Sprintf("github_traffic_%s.csv", now.Format("20060102"))
}

// WriteCSV exports the ordered report to path. The caller only invokes this
// once the full sequence is computed, so a created file is always complete:
// either header plus every row, or nothing on error.
func WriteCSV(path string, summaries []domain.RepositorySummary) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.IO(fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return apperr.IO(fmt.Sprintf("failed to write %s", path), err)
	}
	for _, s := range summaries {
		row := []string{
			s.Name,
			strconv.Itoa(s.ViewsTotal),
			strconv.Itoa(s.ViewsUnique),
			strconv.Itoa(s.ClonesTotal),
			strconv.Itoa(s.ClonesUnique),
			strconv.Itoa(s.Stars),
			strconv.Itoa(s.Forks),
			formatScore(s.CombinedMetrics),
		}
		if err := cw.Write(row); err != nil {
			return apperr.IO(fmt.Sprintf("failed to write %s", path), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperr.IO(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
