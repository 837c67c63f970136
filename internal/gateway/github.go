// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-traffic/internal/apperr"
	"github.com/naka-gawa/github-traffic/internal/config"
	"github.com/naka-gawa/github-traffic/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListRepositories(ctx context.Context, owner string) ([]domain.RepositoryHandle, error)
	FetchTraffic(ctx context.Context, owner, repo string, timeframeDays int) (domain.Traffic, error)
	FetchStaticMetrics(ctx context.Context, owner, repo string) (domain.StaticMetrics, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
	now           func() time.Time // seam for deterministic timeframe tests
}

// staticMetricsQuery reads the popularity counters of a single repository.
type staticMetricsQuery struct {
	Repository struct {
		StargazerCount githubv4.Int
		ForkCount      githubv4.Int
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(cfg *config.Config, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
		now:           time.Now,
	}, nil
}

// ListRepositories returns every repository owned by the account, in the
// order the API lists them. That order is the sort tie-break downstream,
// so pages are appended strictly in sequence.
func (g *GitHubGateway) ListRepositories(ctx context.Context, owner string) ([]domain.RepositoryHandle, error) {
	g.logger.Printf("Fetching repository list for %s...", owner)
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var handles []domain.RepositoryHandle
	for {
		repos, resp, err := g.restClient.Repositories.ListByUser(ctx, owner, opts)
		if err != nil {
			return nil, mapAccountError(fmt.Sprintf("list repositories for %s", owner), err)
		}
		for _, repo := range repos {
			handles = append(handles, domain.RepositoryHandle{
				Owner: owner,
				Name:  repo.GetName(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Found %d repositories.", len(handles))
	return handles, nil
}

// FetchTraffic sums the daily view and clone samples that fall inside the
// trailing timeframe window. The API always returns its full 14-day
// retention; shorter windows are clipped here by sample timestamp.
func (g *GitHubGateway) FetchTraffic(ctx context.Context, owner, repo string, timeframeDays int) (domain.Traffic, error) {
	breakdown := &github.TrafficBreakdownOptions{Per: "day"}
	cutoff := g.now().UTC().AddDate(0, 0, -timeframeDays)

	views, _, err := g.restClient.Repositories.ListTrafficViews(ctx, owner, repo, breakdown)
	if err != nil {
		return domain.Traffic{}, mapRepoError(owner, repo, "traffic views", err)
	}
	clones, _, err := g.restClient.Repositories.ListTrafficClones(ctx, owner, repo, breakdown)
	if err != nil {
		return domain.Traffic{}, mapRepoError(owner, repo, "traffic clones", err)
	}

	var traffic domain.Traffic
	for _, day := range views.Views {
		if day.GetTimestamp().Time.Before(cutoff) {
			continue
		}
		traffic.ViewsTotal += day.GetCount()
		traffic.ViewsUnique += day.GetUniques()
	}
	for _, day := range clones.Clones {
		if day.GetTimestamp().Time.Before(cutoff) {
			continue
		}
		traffic.ClonesTotal += day.GetCount()
		traffic.ClonesUnique += day.GetUniques()
	}
	return traffic, nil
}

// FetchStaticMetrics reads stars and forks via the GraphQL API.
func (g *GitHubGateway) FetchStaticMetrics(ctx context.Context, owner, repo string) (domain.StaticMetrics, error) {
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
	var q staticMetricsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return domain.StaticMetrics{}, mapRepoError(owner, repo, "static metrics", err)
	}
	return domain.StaticMetrics{
		Stars: int(q.Repository.StargazerCount),
		Forks: int(q.Repository.ForkCount),
	}, nil
}

// mapAccountError classifies failures of account-level calls.
func mapAccountError(op string, err error) error {
	if limited := rateLimitError(err); limited != nil {
		return limited
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return apperr.Auth("token rejected, check GITHUB_TOKEN", err)
		case http.StatusNotFound:
			return apperr.NotFound(fmt.Sprintf("failed to %s", op), err)
		}
	}
	return apperr.Network(fmt.Sprintf("failed to %s", op), err)
}

// mapRepoError classifies failures of repository-scoped calls. A 403 on a
// traffic endpoint means the token lacks push access to that repository,
// which the report treats the same as a missing repository: skip it.
func mapRepoError(owner, repo, op string, err error) error {
	if limited := rateLimitError(err); limited != nil {
		return limited
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return apperr.Auth("token rejected, check GITHUB_TOKEN", err)
		case http.StatusForbidden, http.StatusNotFound:
			return apperr.NotFound(fmt.Sprintf("%s/%s is not accessible (%s)", owner, repo, op), err)
		}
	}
	return apperr.Network(fmt.Sprintf("failed to fetch %s for %s/%s", op, owner, repo), err)
}

func rateLimitError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperr.RateLimited("API request quota exhausted", err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apperr.RateLimited("secondary rate limit hit", err)
	}
	return nil
}
