package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/config"
	"github.com/amishk599/jobagg/internal/model"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig_MissingDefaultFallsBackToEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JOBAGG_CONFIG", "")
	t.Setenv("JSEARCH_API_KEY", "k")
	t.Setenv("ADZUNA_APP_ID", "")
	t.Setenv("ADZUNA_APP_KEY", "")
	t.Setenv("JOOBLE_API_KEY", "")
	t.Setenv("SERPAPI_API_KEY", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Providers.JSearch.Enabled || cfg.Providers.Jooble.Enabled {
		t.Errorf("providers = %+v", cfg.Providers)
	}
}

func TestLoadConfig_ExplicitMissingFileErrors(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := loadConfig("nope.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestBuildSearchers_EnabledInFetchOrder(t *testing.T) {
	cfg := &config.Config{Providers: config.ProvidersConfig{
		SerpAPI: config.ProviderConfig{Enabled: true, APIKey: "s"},
		JSearch: config.ProviderConfig{Enabled: true, APIKey: "j"},
		Jooble:  config.ProviderConfig{Enabled: false, APIKey: "x"},
	}}

	searchers := buildSearchers(cfg, discardLogger())

	want := []model.Source{model.SourceJSearch, model.SourceSerpAPI}
	if len(searchers) != len(want) {
		t.Fatalf("got %d searchers, want %d", len(searchers), len(want))
	}
	for i, s := range searchers {
		if s.Name() != want[i] {
			t.Errorf("searchers[%d] = %s, want %s", i, s.Name(), want[i])
		}
	}
}

func TestWriteJSON_EmptyResultsIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, aggregator.Result{}); err != nil {
		t.Fatal(err)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(body["results"])); got != "[]" {
		t.Errorf("results = %s, want []", got)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, aggregator.Result{
		Jobs: []model.MergedJob{{
			Title: "Go Engineer", Company: "Acme", Location: "Pune",
			SourceFrom: []model.Source{model.SourceJSearch, model.SourceJooble},
		}},
		Failed: []model.Source{model.SourceAdzuna},
	})

	out := buf.String()
	for _, want := range []string{"Go Engineer", "jsearch,jooble", "Total: 1 postings", "unavailable: adzuna"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q, want abcd…", got)
	}
}

func TestSetupNotifier_SelectsByType(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{"log", "*notifier.LogNotifier"},
		{"slack", "*notifier.SlackNotifier"},
	}
	for _, tt := range tests {
		cfg := &config.Config{Notification: config.NotificationConfig{
			Type:       tt.typ,
			WebhookURL: "https://hooks.slack.com/services/x",
		}}
		n := setupNotifier(cfg, &http.Client{}, discardLogger())
		if got := fmt.Sprintf("%T", n); got != tt.want {
			t.Errorf("setupNotifier(%q) = %s, want %s", tt.typ, got, tt.want)
		}
	}
}
