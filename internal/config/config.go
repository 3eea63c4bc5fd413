package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobagg/internal/model"
)

// Config is the root configuration for jobagg.
type Config struct {
	Server       ServerConfig
	Providers    ProvidersConfig
	Watch        WatchConfig
	Notification NotificationConfig
}

// ServerConfig controls the HTTP endpoint.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// ProvidersConfig holds per-provider credentials and the shared hardening knobs.
type ProvidersConfig struct {
	Timeout        time.Duration // per-request http.Client timeout
	MaxRetries     int           // additional attempts after a transient failure
	RetryBaseDelay time.Duration
	MinDelay       time.Duration // minimum gap between requests to the same provider
	JSearch        ProviderConfig
	Adzuna         ProviderConfig
	Jooble         ProviderConfig
	SerpAPI        ProviderConfig
}

// ProviderConfig is one provider's settings. Adzuna uses AppID/AppKey; the
// others use APIKey.
type ProviderConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"` // empty uses the public endpoint
	APIKey  string `yaml:"api_key"`
	AppID   string `yaml:"app_id"`
	AppKey  string `yaml:"app_key"`
}

// For returns the settings for a provider by name.
func (p ProvidersConfig) For(source model.Source) ProviderConfig {
	switch source {
	case model.SourceJSearch:
		return p.JSearch
	case model.SourceAdzuna:
		return p.Adzuna
	case model.SourceJooble:
		return p.Jooble
	case model.SourceSerpAPI:
		return p.SerpAPI
	}
	return ProviderConfig{}
}

// WatchConfig controls the saved-search daemon.
type WatchConfig struct {
	Interval  time.Duration
	DBPath    string
	Retention time.Duration // seen keys older than this are forgotten
	Searches  []SavedSearch
}

// SavedSearch is one search the watch daemon re-runs.
type SavedSearch struct {
	Name    string `yaml:"name"`
	Query   string `yaml:"query"`
	Company string `yaml:"company"`
	Region  string `yaml:"region"`
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
	defaultTimeout         = 15 * time.Second
	defaultMaxRetries      = 1
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultMinDelay        = 200 * time.Millisecond
	defaultWatchInterval   = 30 * time.Minute
	defaultRetention       = 30 * 24 * time.Hour
	defaultDBPath          = "jobs.db"
	slackWebhookPrefix     = "https://hooks.slack.com/"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	Providers    rawProvidersConfig `yaml:"providers"`
	Watch        rawWatchConfig     `yaml:"watch"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type rawProvidersConfig struct {
	Timeout        string         `yaml:"timeout"`
	MaxRetries     *int           `yaml:"max_retries"`
	RetryBaseDelay string         `yaml:"retry_base_delay"`
	MinDelay       string         `yaml:"min_delay"`
	JSearch        ProviderConfig `yaml:"jsearch"`
	Adzuna         ProviderConfig `yaml:"adzuna"`
	Jooble         ProviderConfig `yaml:"jooble"`
	SerpAPI        ProviderConfig `yaml:"serpapi"`
}

type rawWatchConfig struct {
	Interval  string        `yaml:"interval"`
	DBPath    string        `yaml:"db_path"`
	Retention string        `yaml:"retention"`
	Searches  []SavedSearch `yaml:"searches"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and parses the YAML config file at path, expands ${ENV} references,
// applies defaults, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a config with defaults and provider credentials taken from
// JSEARCH_API_KEY, ADZUNA_APP_ID, ADZUNA_APP_KEY, JOOBLE_API_KEY and
// SERPAPI_API_KEY. A provider is enabled when its credentials are present.
func FromEnv() (*Config, error) {
	raw := rawConfig{
		Providers: rawProvidersConfig{
			JSearch: ProviderConfig{APIKey: os.Getenv("JSEARCH_API_KEY")},
			Adzuna:  ProviderConfig{AppID: os.Getenv("ADZUNA_APP_ID"), AppKey: os.Getenv("ADZUNA_APP_KEY")},
			Jooble:  ProviderConfig{APIKey: os.Getenv("JOOBLE_API_KEY")},
			SerpAPI: ProviderConfig{APIKey: os.Getenv("SERPAPI_API_KEY")},
		},
	}
	raw.Providers.JSearch.Enabled = raw.Providers.JSearch.APIKey != ""
	raw.Providers.Adzuna.Enabled = raw.Providers.Adzuna.AppID != "" && raw.Providers.Adzuna.AppKey != ""
	raw.Providers.Jooble.Enabled = raw.Providers.Jooble.APIKey != ""
	raw.Providers.SerpAPI.Enabled = raw.Providers.SerpAPI.APIKey != ""
	if addr := os.Getenv("PORT"); addr != "" {
		raw.Server.Addr = ":" + addr
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromRaw(raw rawConfig) (*Config, error) {
	shutdownTimeout, err := durationOr(raw.Server.ShutdownTimeout, defaultShutdownTimeout, "server.shutdown_timeout")
	if err != nil {
		return nil, err
	}
	timeout, err := durationOr(raw.Providers.Timeout, defaultTimeout, "providers.timeout")
	if err != nil {
		return nil, err
	}
	retryBaseDelay, err := durationOr(raw.Providers.RetryBaseDelay, defaultRetryBaseDelay, "providers.retry_base_delay")
	if err != nil {
		return nil, err
	}
	minDelay, err := durationOr(raw.Providers.MinDelay, defaultMinDelay, "providers.min_delay")
	if err != nil {
		return nil, err
	}
	interval, err := durationOr(raw.Watch.Interval, defaultWatchInterval, "watch.interval")
	if err != nil {
		return nil, err
	}
	retention, err := durationOr(raw.Watch.Retention, defaultRetention, "watch.retention")
	if err != nil {
		return nil, err
	}

	maxRetries := defaultMaxRetries
	if raw.Providers.MaxRetries != nil {
		maxRetries = *raw.Providers.MaxRetries
	}

	addr := raw.Server.Addr
	if addr == "" {
		addr = defaultAddr
	}
	dbPath := raw.Watch.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	notification := raw.Notification
	if notification.Type == "" {
		notification.Type = "log"
	}

	return &Config{
		Server: ServerConfig{
			Addr:            addr,
			ShutdownTimeout: shutdownTimeout,
		},
		Providers: ProvidersConfig{
			Timeout:        timeout,
			MaxRetries:     maxRetries,
			RetryBaseDelay: retryBaseDelay,
			MinDelay:       minDelay,
			JSearch:        raw.Providers.JSearch,
			Adzuna:         raw.Providers.Adzuna,
			Jooble:         raw.Providers.Jooble,
			SerpAPI:        raw.Providers.SerpAPI,
		},
		Watch: WatchConfig{
			Interval:  interval,
			DBPath:    dbPath,
			Retention: retention,
			Searches:  raw.Watch.Searches,
		},
		Notification: notification,
	}, nil
}

func durationOr(value string, fallback time.Duration, field string) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return d, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.Providers.Timeout <= 0 {
		return fmt.Errorf("providers.timeout must be positive, got %v", cfg.Providers.Timeout)
	}
	if cfg.Providers.MaxRetries < 0 || cfg.Providers.MaxRetries > 5 {
		return fmt.Errorf("providers.max_retries must be between 0 and 5, got %d", cfg.Providers.MaxRetries)
	}

	enabled := 0
	for _, src := range model.Sources {
		p := cfg.Providers.For(src)
		if !p.Enabled {
			continue
		}
		enabled++
		if src == model.SourceAdzuna {
			if p.AppID == "" || p.AppKey == "" {
				return fmt.Errorf("providers.adzuna.app_id and app_key are required when enabled")
			}
			continue
		}
		if p.APIKey == "" {
			return fmt.Errorf("providers.%s.api_key is required when enabled", src)
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one provider must be enabled")
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackWebhookPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackWebhookPrefix)
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	return nil
}

// ValidateWatch checks the settings only the watch daemon needs.
func (c *Config) ValidateWatch() error {
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %v", c.Watch.Interval)
	}
	if len(c.Watch.Searches) == 0 {
		return fmt.Errorf("watch.searches must contain at least one search")
	}
	names := make(map[string]bool, len(c.Watch.Searches))
	for i, s := range c.Watch.Searches {
		if s.Name == "" {
			return fmt.Errorf("watch.searches[%d].name is required", i)
		}
		if names[s.Name] {
			return fmt.Errorf("watch.searches: duplicate name %q", s.Name)
		}
		names[s.Name] = true
	}
	return nil
}
