package filter

import (
	"strings"

	"github.com/amishk599/jobagg/internal/model"
)

// CompanyFilter matches jobs whose company contains the filter value.
// Matching is case-insensitive. An empty value matches every job.
type CompanyFilter struct {
	company string // lowercased
}

// NewCompanyFilter returns a filter for the given company substring.
func NewCompanyFilter(company string) *CompanyFilter {
	return &CompanyFilter{company: strings.ToLower(strings.TrimSpace(company))}
}

// Match returns true if the job's raw company field contains the filter value.
func (f *CompanyFilter) Match(job model.Job) bool {
	if f.company == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Company), f.company)
}

// Apply returns the jobs that match f, preserving order.
func Apply(f model.JobFilter, jobs []model.Job) []model.Job {
	matched := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			matched = append(matched, j)
		}
	}
	return matched
}
