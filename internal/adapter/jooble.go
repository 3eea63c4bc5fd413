package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/region"
)

const joobleBaseURL = "https://jooble.org"

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
}

// joobleJob represents a single job in the Jooble response.
type joobleJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
}

type joobleResponse struct {
	TotalCount int         `json:"totalCount"`
	Jobs       []joobleJob `json:"jobs"`
}

// JoobleAdapter searches the Jooble REST API.
type JoobleAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewJoobleAdapter creates a Jooble adapter. An empty baseURL uses the public endpoint.
func NewJoobleAdapter(baseURL, apiKey string, client *http.Client) *JoobleAdapter {
	return &JoobleAdapter{
		baseURL: baseURLOr(baseURL, joobleBaseURL),
		apiKey:  apiKey,
		client:  client,
	}
}

func (a *JoobleAdapter) Name() model.Source { return model.SourceJooble }

// Search posts the keywords and country name to Jooble.
func (a *JoobleAdapter) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	body, err := json.Marshal(joobleRequest{
		Keywords: searchTerms(q),
		Location: region.CountryLabel(q.Country),
	})
	if err != nil {
		return nil, fmt.Errorf("jooble search: %w", err)
	}

	endpoint := a.baseURL + "/api/" + url.PathEscape(a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("jooble search: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp joobleResponse
	if err := doJSON(a.client, req, model.SourceJooble, &resp); err != nil {
		return nil, fmt.Errorf("jooble search: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Jobs))
	for _, jj := range resp.Jobs {
		jobs = append(jobs, model.Job{
			Title:       extractText(jj.Title),
			Company:     jj.Company,
			Location:    jj.Location,
			Description: extractText(jj.Snippet),
			ApplyURL:    jj.Link,
			Source:      model.SourceJooble,
		})
	}
	return jobs, nil
}
