// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// Timeframe bounds, imposed by the GitHub traffic API's 14-day retention.
const (
	MinTimeframeDays     = 1
	MaxTimeframeDays     = 14
	DefaultTimeframeDays = 14
)

// RepositoryHandle identifies a repository returned by the account listing.
type RepositoryHandle struct {
	Owner string
	Name  string
}

// Traffic holds view and clone counts summed over the report timeframe.
type Traffic struct {
	ViewsTotal   int
	ViewsUnique  int
	ClonesTotal  int
	ClonesUnique int
}

// StaticMetrics holds the popularity fields read directly off a repository.
type StaticMetrics struct {
	Stars int
	Forks int
}

// RepositorySummary is the core domain entity: one repository's metrics
// aggregated over the report timeframe, plus the derived combined score.
type RepositorySummary struct {
	Name            string  `json:"repository"`
	ViewsTotal      int     `json:"views_total"`
	ViewsUnique     int     `json:"views_unique"`
	ClonesTotal     int     `json:"clones_total"`
	ClonesUnique    int     `json:"clones_unique"`
	Stars           int     `json:"stars"`
	Forks           int     `json:"forks"`
	CombinedMetrics float64 `json:"combined_metrics"`
}

// Weights for the combined score. Clones outweigh views and both outweigh
// stars/forks, so that actual traffic ranks ahead of passive popularity.
// All weights are positive, which keeps the score monotonic in every field.
const (
	weightViewsTotal   = 1.0
	weightViewsUnique  = 1.5
	weightClonesTotal  = 2.0
	weightClonesUnique = 3.0
	weightStars        = 0.5
	weightForks        = 1.0
)

// NewRepositorySummary merges traffic and static metrics into a summary and
// computes the combined score. CombinedMetrics is never set any other way.
func NewRepositorySummary(name string, traffic Traffic, static StaticMetrics) RepositorySummary {
	s := RepositorySummary{
		Name:         name,
		ViewsTotal:   traffic.ViewsTotal,
		ViewsUnique:  traffic.ViewsUnique,
		ClonesTotal:  traffic.ClonesTotal,
		ClonesUnique: traffic.ClonesUnique,
		Stars:        static.Stars,
		Forks:        static.Forks,
	}
	s.CombinedMetrics = float64(s.ViewsTotal)*weightViewsTotal +
		float64(s.ViewsUnique)*weightViewsUnique +
		float64(s.ClonesTotal)*weightClonesTotal +
		float64(s.ClonesUnique)*weightClonesUnique +
		float64(s.Stars)*weightStars +
		float64(s.Forks)*weightForks
	return s
}

// Empty reports whether every raw metric of the summary is zero.
func (s RepositorySummary) Empty() bool {
	return s.ViewsTotal == 0 && s.ViewsUnique == 0 &&
		s.ClonesTotal == 0 && s.ClonesUnique == 0 &&
		s.Stars == 0 && s.Forks == 0
}

// SortKey names the field used for descending ordering of the report.
type SortKey string

const (
	SortByViewsTotal      SortKey = "views_total"
	SortByViewsUnique     SortKey = "views_unique"
	SortByClonesTotal     SortKey = "clones_total"
	SortByClonesUnique    SortKey = "clones_unique"
	SortByStars           SortKey = "stars"
	SortByForks           SortKey = "forks"
	SortByCombinedMetrics SortKey = "combined_metrics"
)

// SortKeys lists every valid sort key, in the column order of the report.
func SortKeys() []SortKey {
	return []SortKey{
		SortByViewsTotal,
		SortByViewsUnique,
		SortByClonesTotal,
		SortByClonesUnique,
		SortByStars,
		SortByForks,
		SortByCombinedMetrics,
	}
}

// ParseSortKey validates a user-supplied sort key string.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(raw)
	for _, valid := range SortKeys() {
		if key == valid {
			return key, nil
		}
	}
	names := make([]string, 0, len(SortKeys()))
	for _, valid := range SortKeys() {
		names = append(names, string(valid))
	}
	return "", fmt.Errorf("unknown sort key %q (valid: %s)", raw, strings.Join(names, ", "))
}

// Value extracts the summary field the key names, as a float64 so every key
// sorts through the same comparison.
func (k SortKey) Value(s RepositorySummary) float64 {
	switch k {
	case SortByViewsTotal:
		return float64(s.ViewsTotal)
	case SortByViewsUnique:
		return float64(s.ViewsUnique)
	case SortByClonesTotal:
		return float64(s.ClonesTotal)
	case SortByClonesUnique:
		return float64(s.ClonesUnique)
	case SortByStars:
		return float64(s.Stars)
	case SortByForks:
		return float64(s.Forks)
	default:
		return s.CombinedMetrics
	}
}
