package model

import (
	"context"
	"time"
)

// Source names the job-search provider a posting came from.
type Source string

const (
	SourceJSearch Source = "jsearch"
	SourceAdzuna  Source = "adzuna"
	SourceJooble  Source = "jooble"
	SourceSerpAPI Source = "serpapi"
)

// Sources lists every provider in fetch order. Merge precedence follows this order.
var Sources = []Source{SourceJSearch, SourceAdzuna, SourceJooble, SourceSerpAPI}

// Job is a single posting as reported by one provider.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ApplyURL    string `json:"apply_url,omitempty"`
	Source      Source `json:"source"`
}

// MergedJob is a deduplicated posting combining every provider that reported it.
type MergedJob struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	ApplyURL    string   `json:"apply_url"`
	Source      Source   `json:"source"`      // provider that reported it first
	SourceFrom  []Source `json:"source_from"` // every contributing provider, arrival order
}

// Query is the provider-independent search input.
type Query struct {
	Text    string // free-text search
	Company string // substring filter on company
	Region  string // region name, e.g. "india"
	Country string // resolved ISO 3166 alpha-2 code, e.g. "IN"
}

// JobSearcher runs one search against a single provider.
type JobSearcher interface {
	Name() Source
	Search(ctx context.Context, q Query) ([]Job, error)
}

// JobFilter decides whether a job matches the user's criteria.
type JobFilter interface {
	Match(job Job) bool
}

// JobStore tracks which merged postings a saved search has already reported.
type JobStore interface {
	HasSeen(search, key string) (bool, error)
	MarkSeen(search, key string) error
	Cleanup(olderThan time.Duration) error
}

// Notifier sends notifications for newly found postings.
type Notifier interface {
	Notify(search string, jobs []MergedJob) error
}
