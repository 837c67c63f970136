package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-traffic/internal/domain"
)

// Filter applies the hide-empty and exclude-zero-views predicates.
// Both predicates are independent, so their order of application
// does not change the result.
func Filter(summaries []domain.RepositorySummary, opts domain.ReportOptions) []domain.RepositorySummary {
	if !opts.HideEmpty && !opts.ExcludeZeroViews {
		return summaries
	}
	kept := make([]domain.RepositorySummary, 0, len(summaries))
	for _, s := range summaries {
		if opts.HideEmpty && s.Empty() {
			continue
		}
		if opts.ExcludeZeroViews && s.ViewsTotal == 0 {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// SortByKey orders summaries descending by the named field, in place.
// The sort is stable, so repositories with equal values keep their
// account-listing order.
func SortByKey(summaries []domain.RepositorySummary, key domain.SortKey) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return key.Value(summaries[i]) > key.Value(summaries[j])
	})
}

// Distribution holds aggregate statistics across a whole report.
type Distribution struct {
	MeanViews   float64
	MedianViews float64
	MaxCombined float64
}

// Summarize computes the report-wide distribution shown in the table footer.
// An empty report yields the zero Distribution.
func Summarize(summaries []domain.RepositorySummary) Distribution {
	if len(summaries) == 0 {
		return Distribution{}
	}
	views := make([]float64, 0, len(summaries))
	combined := make([]float64, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, float64(s.ViewsTotal))
		combined = append(combined, s.CombinedMetrics)
	}
	var dist Distribution
	dist.MeanViews, _ = stats.Mean(views)
	dist.MedianViews, _ = stats.Median(views)
	dist.MaxCombined, _ = stats.Max(combined)
	return dist
}
