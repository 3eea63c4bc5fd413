package adapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/retry"
)

func TestSerpAPI_Success(t *testing.T) {
	payload := `{
		"jobs_results": [
			{
				"title": "Platform Engineer",
				"company_name": "Umbrella",
				"location": "  Singapore ",
				"description": "Run the platform.",
				"apply_options": [{"title": "LinkedIn", "link": "https://linkedin.example/1"}],
				"share_link": "https://google.example/share/1"
			},
			{
				"title": "SRE",
				"company_name": "Umbrella",
				"location": "Singapore",
				"share_link": "https://google.example/share/2"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("engine") != "google_jobs" || q.Get("gl") != "sg" || q.Get("api_key") != "k" {
			t.Errorf("unexpected params: %v", q)
		}
		if q.Get("q") != "platform jobs" {
			t.Errorf("q = %q", q.Get("q"))
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewSerpAPIAdapter(srv.URL, "k", srv.Client())
	jobs, err := a.Search(context.Background(), model.Query{Text: "platform", Country: "SG"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ApplyURL != "https://linkedin.example/1" {
		t.Errorf("expected first apply option, got %q", jobs[0].ApplyURL)
	}
	if jobs[0].Location != "Singapore" {
		t.Errorf("location = %q", jobs[0].Location)
	}
	if jobs[1].ApplyURL != "https://google.example/share/2" {
		t.Errorf("expected share link fallback, got %q", jobs[1].ApplyURL)
	}
}

func TestSerpAPI_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Invalid API key."}`))
	}))
	defer srv.Close()

	a := NewSerpAPIAdapter(srv.URL, "bad", srv.Client())
	_, err := a.Search(context.Background(), model.Query{Country: "IN"})
	var provErr *model.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Message != "Invalid API key." {
		t.Errorf("message = %q", provErr.Message)
	}
}

func TestSerpAPI_NoResultsIsEmptyNotError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"search_metadata": {"status": "Success"}, "error": "Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	a := NewSerpAPIAdapter(srv.URL, "k", srv.Client())
	rs := retry.NewRetrySearcher(a, 2, time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	jobs, err := rs.Search(context.Background(), model.Query{Text: "zzz", Country: "IN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs == nil || len(jobs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", jobs)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
}
