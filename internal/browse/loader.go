package browse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobagg/internal/aggregator"
)

// ErrCancelled is returned when the user aborts the search with ctrl+c.
var ErrCancelled = errors.New("cancelled")

type searchDoneMsg struct {
	result aggregator.Result
}

type loaderModel struct {
	label    string
	searchFn func(ctx context.Context) aggregator.Result
	timeout  time.Duration
	spinner  spinner.Model
	result   aggregator.Result
	err      error
	done     bool
}

func newLoaderModel(label string, timeout time.Duration, searchFn func(ctx context.Context) aggregator.Result) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	return loaderModel{
		label:    label,
		searchFn: searchFn,
		timeout:  timeout,
		spinner:  s,
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doSearch(), m.spinner.Tick)
}

func (m loaderModel) doSearch() tea.Cmd {
	searchFn := m.searchFn
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return searchDoneMsg{result: searchFn(ctx)}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.result = msg.result
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Searching %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner while the search runs. It renders inline (no alt screen).
func RunLoader(label string, timeout time.Duration, searchFn func(ctx context.Context) aggregator.Result) (aggregator.Result, error) {
	p := tea.NewProgram(newLoaderModel(label, timeout, searchFn))
	result, err := p.Run()
	if err != nil {
		return aggregator.Result{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
