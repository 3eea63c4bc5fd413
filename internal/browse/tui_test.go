package browse

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/region"
)

func sampleResult() aggregator.Result {
	return aggregator.Result{
		Jobs: []model.MergedJob{
			{Title: "Go Engineer", Company: "Acme", Location: "Pune", Source: model.SourceJSearch,
				SourceFrom: []model.Source{model.SourceJSearch, model.SourceAdzuna}, ApplyURL: "https://a.example/1",
				Description: "Build services in Go."},
			{Title: "SRE", Company: "Globex", Location: "Remote", Source: model.SourceJooble,
				SourceFrom: []model.Source{model.SourceJooble}},
		},
		Failed: []model.Source{model.SourceSerpAPI},
	}
}

func sized(m browseModel) browseModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(browseModel)
}

func key(m browseModel, k string) browseModel {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(browseModel)
}

func TestBrowse_CursorClamped(t *testing.T) {
	m := sized(newBrowseModel("go", sampleResult()))

	m = key(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.cursor)
	}
	m = key(m, "down")
	m = key(m, "down")
	m = key(m, "j")
	if m.cursor != 1 {
		t.Errorf("cursor after moving past end = %d, want 1", m.cursor)
	}
}

func TestBrowse_EnterOpensDetailEscReturns(t *testing.T) {
	m := sized(newBrowseModel("go", sampleResult()))

	m = key(m, "enter")
	if m.view != viewDetail {
		t.Fatalf("view = %v, want detail", m.view)
	}
	detail := m.renderDetail()
	for _, want := range []string{"Go Engineer", "Acme", "jsearch, adzuna", "https://a.example/1", "Build services in Go."} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail missing %q", want)
		}
	}

	m = key(m, "esc")
	if m.view != viewList {
		t.Errorf("view after esc = %v, want list", m.view)
	}
}

func TestBrowse_EnterOnEmptyListStaysInList(t *testing.T) {
	m := sized(newBrowseModel("go", aggregator.Result{Jobs: []model.MergedJob{}}))
	m = key(m, "enter")
	if m.view != viewList {
		t.Errorf("view = %v, want list", m.view)
	}
	if !strings.Contains(m.View(), "(no jobs)") {
		t.Error("expected empty placeholder in list view")
	}
}

func TestBrowse_QuitVersusBack(t *testing.T) {
	m := key(sized(newBrowseModel("go", sampleResult())), "q")
	if !m.wantQuit {
		t.Error("q should set wantQuit")
	}

	m = key(sized(newBrowseModel("go", sampleResult())), "esc")
	if m.wantQuit {
		t.Error("esc in list should go back, not quit")
	}
}

func TestBrowse_ListShowsUnavailableProviders(t *testing.T) {
	m := sized(newBrowseModel("go", sampleResult()))
	if !strings.Contains(m.View(), "unavailable: serpapi") {
		t.Error("expected failed providers in header")
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}
	if wordWrap("   ", 10) != "" {
		t.Error("wordWrap of blank text should be empty")
	}
}

func TestPicker_SelectAndQuit(t *testing.T) {
	m := pickerModel{regions: region.All(), chosen: -1}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(pickerModel).chosen; got != 1 {
		t.Errorf("chosen = %d, want 1", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if got := next.(pickerModel).chosen; got != -2 {
		t.Errorf("chosen after q = %d, want -2", got)
	}
}
