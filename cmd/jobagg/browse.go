package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/browse"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/region"
)

var (
	browseCompany string
	browseRegion  string
)

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse search results interactively (TUI)",
	Long:  "Shows the region picker (unless --region is set), then the result list with a detail view.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseCompany, "company", "", "only keep postings whose company contains this text")
	browseCmd.Flags().StringVar(&browseRegion, "region", "", "search region; skips the picker")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Any log output while the TUI owns the terminal corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	agg := buildAggregator(cfg, silentLogger)
	query := strings.Join(args, " ")

	for {
		name := browseRegion
		if name == "" {
			name, err = browse.RunRegionPicker()
			if err != nil {
				fmt.Printf("Picker error: %v\n", err)
				return nil
			}
			if name == "" {
				return nil
			}
		}
		r := region.Lookup(name)

		q := model.Query{Text: query, Company: browseCompany, Region: r.Name}
		res, err := browse.RunLoader(r.Label, 2*cfg.Providers.Timeout, func(ctx context.Context) aggregator.Result {
			return agg.Search(ctx, q)
		})
		if err != nil {
			fmt.Printf("Search error: %v\n", err)
			return nil
		}

		title := fmt.Sprintf("%q in %s", query, r.Label)
		wantQuit, err := browse.Run(title, res)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit || browseRegion != "" {
			return nil
		}
		// else: loop → back to picker
	}
}
