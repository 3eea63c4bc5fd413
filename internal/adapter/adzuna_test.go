package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amishk599/jobagg/internal/model"
)

func TestAdzuna_Success(t *testing.T) {
	payload := `{
		"count": 1,
		"results": [
			{
				"title": "<strong>Data</strong> Analyst",
				"company": {"display_name": "Globex"},
				"location": {"display_name": "London, UK"},
				"description": "&lt;p&gt;Crunch numbers.&lt;/p&gt;",
				"redirect_url": "https://adzuna.example/land/1"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/jobs/gb/search/1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("app_id") != "id" || q.Get("app_key") != "key" {
			t.Errorf("missing credentials: %v", q)
		}
		if q.Get("what") != "analyst" {
			t.Errorf("what = %q", q.Get("what"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter(srv.URL, "id", "key", srv.Client())
	jobs, err := a.Search(context.Background(), model.Query{Text: "analyst", Country: "GB"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	j := jobs[0]
	if j.Title != "Data Analyst" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Company != "Globex" || j.Location != "London, UK" {
		t.Errorf("company/location = %q/%q", j.Company, j.Location)
	}
	if j.Description != "Crunch numbers." {
		t.Errorf("description = %q", j.Description)
	}
	if j.ApplyURL != "https://adzuna.example/land/1" || j.Source != model.SourceAdzuna {
		t.Errorf("unexpected job: %+v", j)
	}
}

func TestAdzuna_EmptyQueryOmitsWhat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("what") {
			t.Errorf("expected no what param, got %q", r.URL.Query().Get("what"))
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter(srv.URL, "id", "key", srv.Client())
	jobs, err := a.Search(context.Background(), model.Query{Country: "IN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}

func TestAdzuna_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewAdzunaAdapter(srv.URL, "id", "bad", srv.Client())
	if _, err := a.Search(context.Background(), model.Query{Country: "IN"}); err == nil {
		t.Fatal("expected error for HTTP 401, got nil")
	}
}
