package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobagg/internal/adapter"
	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/config"
	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/notifier"
	"github.com/amishk599/jobagg/internal/ratelimit"
	"github.com/amishk599/jobagg/internal/retry"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobagg",
	Short: "Multi-provider job search aggregator",
	Long: "jobagg queries several job-search providers in parallel, merges duplicate\n" +
		"postings and serves the result over HTTP, in the terminal, or as alerts.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBAGG_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBAGG_CONFIG env var > "./config.yaml".
// When no path was given and the default file does not exist, the config is
// built from environment variables alone.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		if env := os.Getenv("JOBAGG_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = defaultConfigPath
		}
	}

	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.FromEnv()
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func createSearcher(source model.Source, pc config.ProviderConfig, httpClient *http.Client) model.JobSearcher {
	switch source {
	case model.SourceJSearch:
		return adapter.NewJSearchAdapter(pc.BaseURL, pc.APIKey, httpClient)
	case model.SourceAdzuna:
		return adapter.NewAdzunaAdapter(pc.BaseURL, pc.AppID, pc.AppKey, httpClient)
	case model.SourceJooble:
		return adapter.NewJoobleAdapter(pc.BaseURL, pc.APIKey, httpClient)
	case model.SourceSerpAPI:
		return adapter.NewSerpAPIAdapter(pc.BaseURL, pc.APIKey, httpClient)
	}
	return nil
}

// buildSearchers returns the enabled providers in fetch order, each wrapped
// with per-provider rate limiting and retry.
func buildSearchers(cfg *config.Config, logger *slog.Logger) []model.JobSearcher {
	httpClient := &http.Client{Timeout: cfg.Providers.Timeout}
	limiter := ratelimit.NewProviderRateLimiter(cfg.Providers.MinDelay)

	var searchers []model.JobSearcher
	for _, src := range model.Sources {
		pc := cfg.Providers.For(src)
		if !pc.Enabled {
			logger.Debug("provider disabled", "provider", src)
			continue
		}
		var s model.JobSearcher = createSearcher(src, pc, httpClient)
		s = ratelimit.NewRateLimitedSearcher(s, limiter)
		rs := retry.NewRetrySearcher(s, cfg.Providers.MaxRetries, cfg.Providers.RetryBaseDelay, logger)
		rs.SetMaxDelay(cfg.Providers.Timeout)
		searchers = append(searchers, rs)
		logger.Debug("registered provider", "provider", src)
	}
	return searchers
}

func buildAggregator(cfg *config.Config, logger *slog.Logger) *aggregator.Aggregator {
	return aggregator.New(buildSearchers(cfg, logger), logger)
}
