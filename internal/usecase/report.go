// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-traffic/internal/apperr"
	"github.com/naka-gawa/github-traffic/internal/domain"
	"github.com/naka-gawa/github-traffic/internal/gateway"
)

// fetchConcurrency bounds the number of in-flight per-repository fetches.
const fetchConcurrency = 10

// Reporter is the use case for building a traffic report.
// It orchestrates listing, fetching, aggregation, filtering and sorting.
type Reporter struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(fetcher gateway.Fetcher, logger *log.Logger) *Reporter {
	return &Reporter{
		fetcher: fetcher,
		logger:  logger,
	}
}

// BuildReport performs the main business logic: it lists the account's
// repositories, fetches traffic and static metrics for each, aggregates them
// into summaries, then applies the option filters and the descending sort.
//
// Repositories that turn out to be inaccessible (private, deleted, or traffic
// data forbidden to the token) are skipped; their names are returned so the
// caller can warn about them. Any other fetch failure aborts the whole run.
func (r *Reporter) BuildReport(ctx context.Context, owner string, opts domain.ReportOptions) ([]domain.RepositorySummary, []string, error) {
	r.logger.Println("Usecase: Starting traffic report...")

	handles, err := r.fetcher.ListRepositories(ctx, owner)
	if err != nil {
		return nil, nil, err
	}

	// Fetch per repository with bounded concurrency. Each goroutine writes
	// only its own listing-order slot, so the listing order (the sort
	// tie-break) survives regardless of completion order. A nil slot after
	// the wait means the repository was skipped as inaccessible.
	results := make([]*domain.RepositorySummary, len(handles))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)
	for i, handle := range handles {
		i, handle := i, handle
		eg.Go(func() error {
			summary, err := r.fetchOne(egCtx, handle, opts.TimeframeDays)
			if err != nil {
				if apperr.IsNotFound(err) {
					r.logger.Printf("  Skipping %s: %v", handle.Name, err)
					return nil
				}
				return err
			}
			results[i] = &summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	summaries := make([]domain.RepositorySummary, 0, len(handles))
	var skipped []string
	for i, result := range results {
		if result == nil {
			skipped = append(skipped, handles[i].Name)
			continue
		}
		summaries = append(summaries, *result)
	}
	r.logger.Printf("Usecase: Aggregated %d repositories (%d skipped).", len(summaries), len(skipped))

	summaries = Filter(summaries, opts)
	SortByKey(summaries, opts.SortBy)

	r.logger.Println("Usecase: Report complete.")
	return summaries, skipped, nil
}

func (r *Reporter) fetchOne(ctx context.Context, handle domain.RepositoryHandle, timeframeDays int) (domain.RepositorySummary, error) {
	traffic, err := r.fetcher.FetchTraffic(ctx, handle.Owner, handle.Name, timeframeDays)
	if err != nil {
		return domain.RepositorySummary{}, err
	}
	static, err := r.fetcher.FetchStaticMetrics(ctx, handle.Owner, handle.Name)
	if err != nil {
		return domain.RepositorySummary{}, err
	}
	return domain.NewRepositorySummary(handle.Name, traffic, static), nil
}
