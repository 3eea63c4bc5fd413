package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobagg/internal/config"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/poller"
	"github.com/amishk599/jobagg/internal/scheduler"
	"github.com/amishk599/jobagg/internal/store"
)

// searchPause is the gap between saved searches within one watch cycle.
const searchPause = time.Second

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run saved searches and notify on new postings",
	Long:  "Runs every saved search on watch.interval; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "poll each search once, do not mark as seen, then exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateWatch(); err != nil {
		logger.Error("invalid watch config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.Watch.Interval.String(),
		"searches", len(cfg.Watch.Searches),
		"notification", cfg.Notification.Type,
	)

	var jobStore model.JobStore
	var sqlStore *store.SQLiteStore
	if watchOnce {
		logger.Info("once mode: no jobs will be marked as seen")
		jobStore = store.NewNopStore()
	} else {
		sqlStore, err = store.NewSQLiteStore(cfg.Watch.DBPath)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		jobStore = sqlStore
	}

	httpClient := &http.Client{Timeout: cfg.Providers.Timeout}
	n := setupNotifier(cfg, httpClient, logger)
	agg := buildAggregator(cfg, logger)
	pollers := buildPollers(cfg, agg, jobStore, n, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(pollers, cfg.Watch.Interval, searchPause, logger)
	if watchOnce {
		sched.RunOnce(ctx)
		logger.Info("watch once complete")
		return nil
	}

	sched.PruneAfterCycle(sqlStore, cfg.Watch.Retention)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}

func buildPollers(cfg *config.Config, searcher poller.Searcher, jobStore model.JobStore, n model.Notifier, logger *slog.Logger) []*poller.SearchPoller {
	var pollers []*poller.SearchPoller
	for _, s := range cfg.Watch.Searches {
		q := model.Query{Text: s.Query, Company: s.Company, Region: s.Region}
		pollers = append(pollers, poller.NewSearchPoller(s.Name, q, searcher, jobStore, n, logger))
		logger.Info("registered search", "name", s.Name, "query", s.Query, "region", s.Region)
	}
	return pollers
}
