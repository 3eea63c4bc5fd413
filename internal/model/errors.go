package model

import (
	"fmt"
	"time"
)

// HTTPError carries a provider's non-2xx status so retry logic can classify it.
type HTTPError struct {
	Source     Source
	StatusCode int
	RetryAfter time.Duration // zero when the provider sent no Retry-After
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
}

// Temporary reports whether the status is worth retrying (429 or 5xx).
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// ProviderError is a failure the provider reported inside a successful
// response body, such as a rejected API key. Retrying will not change it.
type ProviderError struct {
	Source  Source
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Temporary always reports false.
func (e *ProviderError) Temporary() bool { return false }
