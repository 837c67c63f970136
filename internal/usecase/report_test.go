package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-traffic/internal/apperr"
	"github.com/naka-gawa/github-traffic/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListRepositories(ctx context.Context, owner string) ([]domain.RepositoryHandle, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepositoryHandle), args.Error(1)
}

func (m *mockFetcher) FetchTraffic(ctx context.Context, owner, repo string, timeframeDays int) (domain.Traffic, error) {
	args := m.Called(ctx, owner, repo, timeframeDays)
	return args.Get(0).(domain.Traffic), args.Error(1)
}

func (m *mockFetcher) FetchStaticMetrics(ctx context.Context, owner, repo string) (domain.StaticMetrics, error) {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).(domain.StaticMetrics), args.Error(1)
}

func handles(names ...string) []domain.RepositoryHandle {
	out := make([]domain.RepositoryHandle, 0, len(names))
	for _, name := range names {
		out = append(out, domain.RepositoryHandle{Owner: "octocat", Name: name})
	}
	return out
}

func TestReporter_BuildReport(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)
	opts := domain.DefaultReportOptions()

	t.Run("happy path - aggregates and sorts by combined score", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("ListRepositories", mock.Anything, "octocat").Return(handles("quiet", "busy"), nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "quiet", 14).Return(domain.Traffic{ViewsTotal: 1}, nil)
		fetcher.On("FetchStaticMetrics", mock.Anything, "octocat", "quiet").Return(domain.StaticMetrics{Stars: 1}, nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "busy", 14).Return(domain.Traffic{ViewsTotal: 100, ViewsUnique: 50}, nil)
		fetcher.On("FetchStaticMetrics", mock.Anything, "octocat", "busy").Return(domain.StaticMetrics{Stars: 5, Forks: 1}, nil)

		reporter := NewReporter(fetcher, logger)
		summaries, skipped, err := reporter.BuildReport(ctx, "octocat", opts)

		assert.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, []string{"busy", "quiet"}, names(summaries))
		assert.Equal(t, 100, summaries[0].ViewsTotal)
		assert.Equal(t, 5, summaries[0].Stars)
		fetcher.AssertExpectations(t)
	})

	t.Run("inaccessible repository is skipped, run continues", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("ListRepositories", mock.Anything, "octocat").Return(handles("ok", "gone"), nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "ok", 14).Return(domain.Traffic{ViewsTotal: 3}, nil)
		fetcher.On("FetchStaticMetrics", mock.Anything, "octocat", "ok").Return(domain.StaticMetrics{}, nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "gone", 14).
			Return(domain.Traffic{}, apperr.NotFound("octocat/gone is not accessible", nil))

		reporter := NewReporter(fetcher, logger)
		summaries, skipped, err := reporter.BuildReport(ctx, "octocat", opts)

		assert.NoError(t, err)
		assert.Equal(t, []string{"ok"}, names(summaries))
		assert.Equal(t, []string{"gone"}, skipped)
		fetcher.AssertExpectations(t)
	})

	t.Run("listing failure aborts the run", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("ListRepositories", mock.Anything, "octocat").
			Return(nil, apperr.Auth("token rejected", nil))

		reporter := NewReporter(fetcher, logger)
		summaries, skipped, err := reporter.BuildReport(ctx, "octocat", opts)

		assert.Error(t, err)
		assert.True(t, apperr.IsAuth(err))
		assert.Nil(t, summaries)
		assert.Nil(t, skipped)
	})

	t.Run("non-recoverable fetch failure aborts the run", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("ListRepositories", mock.Anything, "octocat").Return(handles("only"), nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "only", 14).
			Return(domain.Traffic{}, apperr.Network("connection reset", errors.New("reset")))

		reporter := NewReporter(fetcher, logger)
		_, _, err := reporter.BuildReport(ctx, "octocat", opts)

		assert.Error(t, err)
		assert.False(t, apperr.IsNotFound(err))
	})

	t.Run("hide-empty filter applies inside the pipeline", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("ListRepositories", mock.Anything, "octocat").Return(handles("repo1", "repo2"), nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "repo1", 14).
			Return(domain.Traffic{ViewsTotal: 100, ViewsUnique: 50}, nil)
		fetcher.On("FetchStaticMetrics", mock.Anything, "octocat", "repo1").
			Return(domain.StaticMetrics{Stars: 5, Forks: 1}, nil)
		fetcher.On("FetchTraffic", mock.Anything, "octocat", "repo2", 14).Return(domain.Traffic{}, nil)
		fetcher.On("FetchStaticMetrics", mock.Anything, "octocat", "repo2").Return(domain.StaticMetrics{}, nil)

		hideEmpty := domain.DefaultReportOptions()
		hideEmpty.HideEmpty = true

		reporter := NewReporter(fetcher, logger)
		summaries, skipped, err := reporter.BuildReport(ctx, "octocat", hideEmpty)

		assert.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, []string{"repo1"}, names(summaries))
	})

	t.Run("zero repositories yields an empty report", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("ListRepositories", mock.Anything, "octocat").Return([]domain.RepositoryHandle{}, nil)

		reporter := NewReporter(fetcher, logger)
		summaries, skipped, err := reporter.BuildReport(ctx, "octocat", opts)

		assert.NoError(t, err)
		assert.Empty(t, summaries)
		assert.Empty(t, skipped)
	})
}
