package poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/normalize"
)

// Searcher runs one aggregate search. Implemented by *aggregator.Aggregator.
type Searcher interface {
	Search(ctx context.Context, q model.Query) aggregator.Result
	Providers() []model.Source
}

// SearchPoller owns the full cycle for one saved search:
// aggregate → dedup against store → notify → mark seen.
type SearchPoller struct {
	Name     string
	query    model.Query
	searcher Searcher
	store    model.JobStore
	notifier model.Notifier
	logger   *slog.Logger
}

// NewSearchPoller creates a poller wired with all its dependencies.
func NewSearchPoller(
	name string,
	query model.Query,
	searcher Searcher,
	store model.JobStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *SearchPoller {
	return &SearchPoller{
		Name:     name,
		query:    query,
		searcher: searcher,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Poll runs one cycle. It fails only when every provider failed or when the
// store or notifier errors; partial provider failure is not an error.
func (p *SearchPoller) Poll(ctx context.Context) error {
	res := p.searcher.Search(ctx, p.query)
	if n := len(p.searcher.Providers()); n > 0 && len(res.Failed) == n {
		return fmt.Errorf("polling %s: all %d providers failed", p.Name, n)
	}

	var newJobs []model.MergedJob
	var newKeys []string
	for _, job := range res.Jobs {
		key := normalize.Key(job.Title, job.Company)
		seen, err := p.store.HasSeen(p.Name, key)
		if err != nil {
			return fmt.Errorf("polling %s: checking seen status: %w", p.Name, err)
		}
		if !seen {
			newJobs = append(newJobs, job)
			newKeys = append(newKeys, key)
		}
	}

	if len(newJobs) > 0 {
		if err := p.notifier.Notify(p.Name, newJobs); err != nil {
			return fmt.Errorf("polling %s: notifying: %w", p.Name, err)
		}
	}

	for _, key := range newKeys {
		if err := p.store.MarkSeen(p.Name, key); err != nil {
			return fmt.Errorf("polling %s: marking seen: %w", p.Name, err)
		}
	}

	p.logger.Info("polled search",
		"search", p.Name,
		"results", len(res.Jobs),
		"new", len(newJobs),
		"failed_providers", len(res.Failed),
	)

	return nil
}
