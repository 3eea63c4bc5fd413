// Package aggregator fans one search out to every configured provider, isolates
// provider failures, and folds the combined results into deduplicated postings.
package aggregator

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/jobagg/internal/filter"
	"github.com/amishk599/jobagg/internal/merge"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/region"
)

// Result is the outcome of one aggregate search.
type Result struct {
	Jobs   []model.MergedJob
	Failed []model.Source // providers whose search errored, in provider order
}

// Aggregator runs a search across providers in a fixed order.
type Aggregator struct {
	searchers []model.JobSearcher
	logger    *slog.Logger
}

// New creates an aggregator. The order of searchers is the merge precedence.
func New(searchers []model.JobSearcher, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		searchers: searchers,
		logger:    logger,
	}
}

// Providers returns the configured provider names in fetch order.
func (a *Aggregator) Providers() []model.Source {
	out := make([]model.Source, len(a.searchers))
	for i, s := range a.searchers {
		out[i] = s.Name()
	}
	return out
}

// Search resolves the query's region, queries every provider concurrently and
// merges what came back. It never returns an error: a failed provider simply
// contributes nothing and is listed in Result.Failed.
func (a *Aggregator) Search(ctx context.Context, q model.Query) Result {
	r := region.Lookup(q.Region)
	q.Region = r.Name
	q.Country = r.Country

	start := time.Now()
	perProvider := make([][]model.Job, len(a.searchers))
	errs := make([]error, len(a.searchers))

	var g errgroup.Group
	for i, s := range a.searchers {
		i, s := i, s
		g.Go(func() error {
			jobs, err := s.Search(ctx, q)
			if err != nil {
				errs[i] = err
				return nil
			}
			perProvider[i] = jobs
			return nil
		})
	}
	_ = g.Wait()

	var all []model.Job
	var failed []model.Source
	for i, s := range a.searchers {
		if errs[i] != nil {
			failed = append(failed, s.Name())
			a.logger.Warn("provider search failed", "provider", s.Name(), "error", errs[i])
			continue
		}
		all = append(all, perProvider[i]...)
	}

	matched := filter.Apply(filter.NewCompanyFilter(q.Company), all)
	merged := merge.MergeDistinct(matched)

	a.logger.Info("aggregated search",
		"query", q.Text,
		"company", q.Company,
		"country", q.Country,
		"fetched", len(all),
		"matched", len(matched),
		"merged", len(merged),
		"failed", len(failed),
		"duration", time.Since(start).String(),
	)

	return Result{Jobs: merged, Failed: failed}
}
