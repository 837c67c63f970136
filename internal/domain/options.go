package domain

import (
	"fmt"

	"github.com/naka-gawa/github-traffic/internal/apperr"
)

// ReportOptions carries the user-selected knobs for a single report run.
type ReportOptions struct {
	HideEmpty        bool
	ExcludeZeroViews bool
	WriteCSV         bool
	SortBy           SortKey
	TimeframeDays    int
}

// DefaultReportOptions returns the options used when no flags are given.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		SortBy:        SortByCombinedMetrics,
		TimeframeDays: DefaultTimeframeDays,
	}
}

// Validate rejects out-of-range timeframes and unknown sort keys.
// It must be called before any network client is constructed.
func (o ReportOptions) Validate() error {
	if o.TimeframeDays < MinTimeframeDays || o.TimeframeDays > MaxTimeframeDays {
		return apperr.Validation(fmt.Sprintf(
			"timeframe must be between %d and %d days (GitHub retains traffic data for %d days), got %d",
			MinTimeframeDays, MaxTimeframeDays, MaxTimeframeDays, o.TimeframeDays))
	}
	if _, err := ParseSortKey(string(o.SortBy)); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}
