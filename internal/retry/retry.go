package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/amishk599/jobagg/internal/model"
)

// RetrySearcher is a decorator that retries transient provider failures with
// exponential backoff and jitter before giving up.
type RetrySearcher struct {
	inner      model.JobSearcher
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration // upper bound on any single wait, Retry-After included
	logger     *slog.Logger
}

const defaultMaxDelay = 10 * time.Second

// NewRetrySearcher wraps a JobSearcher with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetrySearcher(inner model.JobSearcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetrySearcher {
	return &RetrySearcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   defaultMaxDelay,
		logger:     logger,
	}
}

// SetMaxDelay bounds every wait between attempts. Non-positive values are ignored.
func (s *RetrySearcher) SetMaxDelay(d time.Duration) {
	if d > 0 {
		s.maxDelay = d
	}
}

func (s *RetrySearcher) Name() model.Source { return s.inner.Name() }

// Search runs the wrapped search, retrying on transient errors.
func (s *RetrySearcher) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	jobs, err := s.inner.Search(ctx, q)
	if err == nil {
		return jobs, nil
	}
	if !isRetryable(err) {
		return nil, err
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		delay := s.backoffDelay(attempt, lastErr)

		s.logger.Warn("retrying provider after transient error",
			"provider", s.inner.Name(),
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		jobs, err = s.inner.Search(ctx, q)
		if err == nil {
			return jobs, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After from the provider takes precedence. Both are capped at maxDelay.
func (s *RetrySearcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return min(httpErr.RetryAfter, s.maxDelay)
	}

	delay := s.baseDelay
	for i := 1; i < attempt && delay < s.maxDelay; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return min(time.Duration(float64(delay)+(rand.Float64()*2-1)*jitter), s.maxDelay)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	var provErr *model.ProviderError
	if errors.As(err, &provErr) {
		return false
	}

	// Network, DNS and decode errors.
	return true
}
