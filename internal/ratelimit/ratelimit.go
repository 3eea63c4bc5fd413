package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/jobagg/internal/model"
)

// ProviderRateLimiter enforces a minimum delay between requests to the same provider.
type ProviderRateLimiter struct {
	mu       sync.Mutex
	limiters map[model.Source]*rate.Limiter
	every    rate.Limit
}

// NewProviderRateLimiter creates a rate limiter that allows one request per
// minDelay to each provider. A non-positive minDelay disables limiting.
func NewProviderRateLimiter(minDelay time.Duration) *ProviderRateLimiter {
	every := rate.Inf
	if minDelay > 0 {
		every = rate.Every(minDelay)
	}
	return &ProviderRateLimiter{
		limiters: make(map[model.Source]*rate.Limiter),
		every:    every,
	}
}

func (r *ProviderRateLimiter) limiterFor(source model.Source) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lim, ok := r.limiters[source]; ok {
		return lim
	}
	lim := rate.NewLimiter(r.every, 1)
	r.limiters[source] = lim
	return lim
}

// Wait blocks until the provider's limiter allows another request.
// Returns an error if the context is cancelled while waiting.
func (r *ProviderRateLimiter) Wait(ctx context.Context, source model.Source) error {
	if err := r.limiterFor(source).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", source, err)
	}
	return nil
}

// RateLimitedSearcher is a decorator that waits on the provider's limiter
// before delegating to the wrapped JobSearcher.
type RateLimitedSearcher struct {
	inner   model.JobSearcher
	limiter *ProviderRateLimiter
}

// NewRateLimitedSearcher wraps a JobSearcher with provider-level rate limiting.
// Searchers for the same provider should share one limiter instance.
func NewRateLimitedSearcher(inner model.JobSearcher, limiter *ProviderRateLimiter) *RateLimitedSearcher {
	return &RateLimitedSearcher{
		inner:   inner,
		limiter: limiter,
	}
}

func (s *RateLimitedSearcher) Name() model.Source { return s.inner.Name() }

// Search waits for the limiter, then delegates to the wrapped searcher.
func (s *RateLimitedSearcher) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	if err := s.limiter.Wait(ctx, s.inner.Name()); err != nil {
		return nil, err
	}
	return s.inner.Search(ctx, q)
}
