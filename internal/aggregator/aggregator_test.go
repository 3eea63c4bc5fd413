package aggregator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/amishk599/jobagg/internal/model"
)

// --- Fakes ---

// fakeSearcher returns canned jobs or an error and records the query it saw.
type fakeSearcher struct {
	name  model.Source
	jobs  []model.Job
	err   error
	delay time.Duration

	mu  sync.Mutex
	got model.Query
}

func (f *fakeSearcher) Name() model.Source { return f.name }

func (f *fakeSearcher) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	f.mu.Lock()
	f.got = q
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.jobs, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func job(src model.Source, title, company string) model.Job {
	return model.Job{Title: title, Company: company, Source: src}
}

// --- Tests ---

func TestSearch_AllProvidersFail(t *testing.T) {
	var searchers []model.JobSearcher
	for _, src := range model.Sources {
		searchers = append(searchers, &fakeSearcher{name: src, err: errors.New("boom")})
	}
	agg := New(searchers, discardLogger())

	res := agg.Search(context.Background(), model.Query{Text: "go"})
	if res.Jobs == nil || len(res.Jobs) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", res.Jobs)
	}
	if !slices.Equal(res.Failed, model.Sources) {
		t.Errorf("Failed = %v, want %v", res.Failed, model.Sources)
	}
}

func TestSearch_OnlyJSearchReturns(t *testing.T) {
	agg := New([]model.JobSearcher{
		&fakeSearcher{name: model.SourceJSearch, jobs: []model.Job{job(model.SourceJSearch, "Software Engineer", "Acme")}},
		&fakeSearcher{name: model.SourceAdzuna, err: errors.New("timeout")},
		&fakeSearcher{name: model.SourceJooble},
		&fakeSearcher{name: model.SourceSerpAPI, err: &model.HTTPError{StatusCode: 500}},
	}, discardLogger())

	res := agg.Search(context.Background(), model.Query{})
	if len(res.Jobs) != 1 {
		t.Fatalf("expected 1 merged job, got %d", len(res.Jobs))
	}
	if !slices.Equal(res.Jobs[0].SourceFrom, []model.Source{model.SourceJSearch}) {
		t.Errorf("SourceFrom = %v", res.Jobs[0].SourceFrom)
	}
	wantFailed := []model.Source{model.SourceAdzuna, model.SourceSerpAPI}
	if !slices.Equal(res.Failed, wantFailed) {
		t.Errorf("Failed = %v, want %v", res.Failed, wantFailed)
	}
}

func TestSearch_MergesInProviderOrderRegardlessOfCompletion(t *testing.T) {
	// jsearch finishes last but still wins precedence.
	agg := New([]model.JobSearcher{
		&fakeSearcher{
			name:  model.SourceJSearch,
			delay: 30 * time.Millisecond,
			jobs:  []model.Job{{Title: "SRE", Company: "PwC", Description: "first", Source: model.SourceJSearch}},
		},
		&fakeSearcher{
			name: model.SourceAdzuna,
			jobs: []model.Job{{Title: "SRE", Company: "PricewaterhouseCoopers India", Description: "second", Location: "Pune", Source: model.SourceAdzuna}},
		},
	}, discardLogger())

	res := agg.Search(context.Background(), model.Query{})
	if len(res.Jobs) != 1 {
		t.Fatalf("expected 1 merged job, got %d", len(res.Jobs))
	}
	m := res.Jobs[0]
	if m.Description != "first" || m.Location != "Pune" {
		t.Errorf("unexpected merge: %+v", m)
	}
	want := []model.Source{model.SourceJSearch, model.SourceAdzuna}
	if !slices.Equal(m.SourceFrom, want) {
		t.Errorf("SourceFrom = %v, want %v", m.SourceFrom, want)
	}
}

func TestSearch_AppliesCompanyFilter(t *testing.T) {
	agg := New([]model.JobSearcher{
		&fakeSearcher{name: model.SourceJooble, jobs: []model.Job{
			job(model.SourceJooble, "Engineer", "Acme Corp"),
			job(model.SourceJooble, "Engineer", "Globex"),
		}},
	}, discardLogger())

	res := agg.Search(context.Background(), model.Query{Company: "ACME"})
	if len(res.Jobs) != 1 || res.Jobs[0].Company != "Acme Corp" {
		t.Fatalf("expected only Acme Corp, got %+v", res.Jobs)
	}
}

func TestSearch_ResolvesRegion(t *testing.T) {
	tests := []struct {
		region      string
		wantCountry string
	}{
		{region: "", wantCountry: "IN"},
		{region: "uk", wantCountry: "GB"},
		{region: "mars", wantCountry: "IN"},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			fs := &fakeSearcher{name: model.SourceJSearch}
			New([]model.JobSearcher{fs}, discardLogger()).Search(context.Background(), model.Query{Region: tt.region})
			if fs.got.Country != tt.wantCountry {
				t.Errorf("country = %q, want %q", fs.got.Country, tt.wantCountry)
			}
		})
	}
}

func TestSearch_RunsProvidersConcurrently(t *testing.T) {
	var searchers []model.JobSearcher
	for _, src := range model.Sources {
		searchers = append(searchers, &fakeSearcher{name: src, delay: 100 * time.Millisecond})
	}
	agg := New(searchers, discardLogger())

	start := time.Now()
	agg.Search(context.Background(), model.Query{})
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("expected concurrent fan-out (~100ms), took %v", elapsed)
	}
}

func TestProviders(t *testing.T) {
	agg := New([]model.JobSearcher{
		&fakeSearcher{name: model.SourceJooble},
		&fakeSearcher{name: model.SourceSerpAPI},
	}, discardLogger())
	want := []model.Source{model.SourceJooble, model.SourceSerpAPI}
	if !slices.Equal(agg.Providers(), want) {
		t.Errorf("Providers() = %v, want %v", agg.Providers(), want)
	}
}
