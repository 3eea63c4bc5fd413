package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/region"
)

const (
	jsearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost    = "jsearch.p.rapidapi.com"
)

// jsearchJob represents a single job in the JSearch response.
type jsearchJob struct {
	JobTitle       string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	JobCity        string `json:"job_city"`
	JobState       string `json:"job_state"`
	JobCountry     string `json:"job_country"`
	JobIsRemote    bool   `json:"job_is_remote"`
	JobDescription string `json:"job_description"`
	JobApplyLink   string `json:"job_apply_link"`
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

// JSearchAdapter searches the JSearch API on RapidAPI.
type JSearchAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewJSearchAdapter creates a JSearch adapter. An empty baseURL uses the public endpoint.
func NewJSearchAdapter(baseURL, apiKey string, client *http.Client) *JSearchAdapter {
	return &JSearchAdapter{
		baseURL: baseURLOr(baseURL, jsearchBaseURL),
		apiKey:  apiKey,
		client:  client,
	}
}

func (a *JSearchAdapter) Name() model.Source { return model.SourceJSearch }

// Search runs one JSearch query for the first page of results.
func (a *JSearchAdapter) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	// JSearch reads the location out of the free-text query.
	query := joinNonEmpty(" ", searchTerms(q), "jobs in", region.CountryLabel(q.Country))

	params := url.Values{}
	params.Set("query", query)
	params.Set("country", strings.ToLower(q.Country))
	params.Set("page", "1")
	params.Set("num_pages", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("jsearch search: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", a.apiKey)
	req.Header.Set("X-RapidAPI-Host", jsearchHost)

	var resp jsearchResponse
	if err := doJSON(a.client, req, model.SourceJSearch, &resp); err != nil {
		return nil, fmt.Errorf("jsearch search: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Data))
	for _, jj := range resp.Data {
		location := joinNonEmpty(", ", jj.JobCity, jj.JobState, jj.JobCountry)
		if location == "" && jj.JobIsRemote {
			location = "Remote"
		}
		jobs = append(jobs, model.Job{
			Title:       jj.JobTitle,
			Company:     jj.EmployerName,
			Location:    location,
			Description: jj.JobDescription,
			ApplyURL:    jj.JobApplyLink,
			Source:      model.SourceJSearch,
		})
	}
	return jobs, nil
}
