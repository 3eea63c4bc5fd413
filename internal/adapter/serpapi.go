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

const serpapiBaseURL = "https://serpapi.com"

type serpapiApplyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// serpapiJob represents a single entry of Google Jobs results returned by SerpAPI.
type serpapiJob struct {
	Title        string               `json:"title"`
	CompanyName  string               `json:"company_name"`
	Location     string               `json:"location"`
	Description  string               `json:"description"`
	ApplyOptions []serpapiApplyOption `json:"apply_options"`
	ShareLink    string               `json:"share_link"`
}

type serpapiResponse struct {
	JobsResults []serpapiJob `json:"jobs_results"`
	Error       string       `json:"error"`
}

// SerpAPIAdapter searches Google Jobs through SerpAPI.
type SerpAPIAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSerpAPIAdapter creates a SerpAPI adapter. An empty baseURL uses the public endpoint.
func NewSerpAPIAdapter(baseURL, apiKey string, client *http.Client) *SerpAPIAdapter {
	return &SerpAPIAdapter{
		baseURL: baseURLOr(baseURL, serpapiBaseURL),
		apiKey:  apiKey,
		client:  client,
	}
}

func (a *SerpAPIAdapter) Name() model.Source { return model.SourceSerpAPI }

// Search runs a google_jobs engine query scoped to the query's country.
func (a *SerpAPIAdapter) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", joinNonEmpty(" ", searchTerms(q), "jobs"))
	params.Set("location", region.CountryLabel(q.Country))
	params.Set("gl", strings.ToLower(q.Country))
	params.Set("hl", "en")
	params.Set("api_key", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi search: %w", err)
	}

	var resp serpapiResponse
	if err := doJSON(a.client, req, model.SourceSerpAPI, &resp); err != nil {
		return nil, fmt.Errorf("serpapi search: %w", err)
	}
	// SerpAPI reports both "no results" and request problems as a 200 with
	// an error string; only the latter is a failure.
	if resp.Error != "" && len(resp.JobsResults) == 0 {
		if isSerpAPINoResults(resp.Error) {
			return []model.Job{}, nil
		}
		return nil, fmt.Errorf("serpapi search: %w", &model.ProviderError{Source: model.SourceSerpAPI, Message: resp.Error})
	}

	jobs := make([]model.Job, 0, len(resp.JobsResults))
	for _, sj := range resp.JobsResults {
		applyURL := sj.ShareLink
		if len(sj.ApplyOptions) > 0 && sj.ApplyOptions[0].Link != "" {
			applyURL = sj.ApplyOptions[0].Link
		}
		jobs = append(jobs, model.Job{
			Title:       sj.Title,
			Company:     sj.CompanyName,
			Location:    strings.TrimSpace(sj.Location),
			Description: sj.Description,
			ApplyURL:    applyURL,
			Source:      model.SourceSerpAPI,
		})
	}
	return jobs, nil
}

func isSerpAPINoResults(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "hasn't returned any results")
}
