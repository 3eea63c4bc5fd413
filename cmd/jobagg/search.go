package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/region"
)

var (
	searchCompany string
	searchRegion  string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one aggregate search and print the results",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSearch,
}

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

func init() {
	searchCmd.Flags().StringVar(&searchCompany, "company", "", "only keep postings whose company contains this text")
	searchCmd.Flags().StringVar(&searchRegion, "region", region.Default, "search region (india, usa, uk, canada, australia, uae, singapore)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the HTTP response body instead of a table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agg := buildAggregator(cfg, logger)
	res := agg.Search(ctx, model.Query{
		Text:    strings.Join(args, " "),
		Company: searchCompany,
		Region:  searchRegion,
	})

	if searchJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	writeTable(cmd.OutOrStdout(), res)
	return nil
}

func writeJSON(w io.Writer, res aggregator.Result) error {
	results := res.Jobs
	if results == nil {
		results = []model.MergedJob{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string][]model.MergedJob{"results": results})
}

func writeTable(w io.Writer, res aggregator.Result) {
	fmt.Fprintln(w, tableHeaderStyle.Render(fmt.Sprintf("%-40s %-25s %-20s %s", "Title", "Company", "Location", "Sources")))
	fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, j := range res.Jobs {
		sources := make([]string, len(j.SourceFrom))
		for i, s := range j.SourceFrom {
			sources[i] = string(s)
		}
		fmt.Fprintf(w, "%-40s %-25s %-20s %s\n",
			truncate(j.Title, 40), truncate(j.Company, 25), truncate(j.Location, 20), strings.Join(sources, ","))
	}

	fmt.Fprintf(w, "\nTotal: %d postings", len(res.Jobs))
	if len(res.Failed) > 0 {
		failed := make([]string, len(res.Failed))
		for i, s := range res.Failed {
			failed[i] = string(s)
		}
		fmt.Fprintf(w, " (unavailable: %s)", strings.Join(failed, ", "))
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
