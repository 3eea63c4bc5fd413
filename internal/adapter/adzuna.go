package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/amishk599/jobagg/internal/model"
)

const adzunaBaseURL = "https://api.adzuna.com"

// adzunaJob represents a single job in the Adzuna search response.
type adzunaJob struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
}

type adzunaResponse struct {
	Count   int         `json:"count"`
	Results []adzunaJob `json:"results"`
}

// AdzunaAdapter searches the Adzuna jobs API.
type AdzunaAdapter struct {
	baseURL string
	appID   string
	appKey  string
	client  *http.Client
}

// NewAdzunaAdapter creates an Adzuna adapter. An empty baseURL uses the public endpoint.
func NewAdzunaAdapter(baseURL, appID, appKey string, client *http.Client) *AdzunaAdapter {
	return &AdzunaAdapter{
		baseURL: baseURLOr(baseURL, adzunaBaseURL),
		appID:   appID,
		appKey:  appKey,
		client:  client,
	}
}

func (a *AdzunaAdapter) Name() model.Source { return model.SourceAdzuna }

// Search fetches the first page of Adzuna results for the query's country.
func (a *AdzunaAdapter) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", "50")
	if terms := searchTerms(q); terms != "" {
		params.Set("what", terms)
	}

	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", a.baseURL, strings.ToLower(q.Country), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var resp adzunaResponse
	if err := doJSON(a.client, req, model.SourceAdzuna, &resp); err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Results))
	for _, aj := range resp.Results {
		jobs = append(jobs, model.Job{
			Title:       extractText(aj.Title),
			Company:     aj.Company.DisplayName,
			Location:    aj.Location.DisplayName,
			Description: extractText(aj.Description),
			ApplyURL:    aj.RedirectURL,
			Source:      model.SourceAdzuna,
		})
	}
	return jobs, nil
}
