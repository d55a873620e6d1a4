package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/good-yellow-bee/smartdetect/internal/logging"
	"github.com/good-yellow-bee/smartdetect/internal/refresh"
	"github.com/good-yellow-bee/smartdetect/internal/scheduler"
)

// Config represents the server configuration.
type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Database    DatabaseConfig  `yaml:"database"`
	Logging     LoggingConfig   `yaml:"logging"`
	Refresh     RefreshConfig   `yaml:"refresh"`
	Triage      TriageConfig    `yaml:"triage"`
	Retention   RetentionConfig `yaml:"retention"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	WatchConfig bool            `yaml:"watch_config"` // reload refresh settings on file change
	Verbose     bool            `yaml:"-"`            // set via CLI flag
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	Address           string        `yaml:"address"`         // HTTP API listen address (default: :8080)
	MetricsAddress    string        `yaml:"metrics_address"` // Prometheus listen address, empty disables
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	StreamMaxDuration time.Duration `yaml:"stream_max_duration"`
	StreamHeartbeat   time.Duration `yaml:"stream_heartbeat"`
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // ":memory:" for a throwaway database
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// RefreshConfig configures the background feeds.
type RefreshConfig struct {
	Activity   refresh.Config `yaml:"activity"`
	Monitoring refresh.Config `yaml:"monitoring"`
	// Latency is the artificial delay of each fixture load.
	Latency time.Duration `yaml:"latency"`
}

// TriageConfig configures alert triage views.
type TriageConfig struct {
	ViewTTL time.Duration `yaml:"view_ttl"`
}

// RetentionConfig configures the alert purge job.
type RetentionConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

// RateLimitConfig configures per-client API rate limiting.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := baseConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := baseConfig()
	cfg.setDefaults()
	return cfg
}

// baseConfig holds the defaults of boolean settings, which a zero value
// cannot distinguish from an explicit false.
func baseConfig() *Config {
	return &Config{
		Refresh: RefreshConfig{
			Activity:   refresh.Config{AutoRefresh: true},
			Monitoring: refresh.Config{AutoRefresh: true},
		},
		Retention:   RetentionConfig{Enabled: true},
		WatchConfig: true,
	}
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.StreamMaxDuration == 0 {
		c.Server.StreamMaxDuration = 30 * time.Minute
	}
	if c.Server.StreamHeartbeat == 0 {
		c.Server.StreamHeartbeat = 15 * time.Second
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/smartdetect.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Refresh.Activity.Interval == 0 {
		c.Refresh.Activity.Interval = 30 * time.Second
	}
	if c.Refresh.Activity.MaxItems == 0 {
		c.Refresh.Activity.MaxItems = 50
	}
	if c.Refresh.Monitoring.Interval == 0 {
		c.Refresh.Monitoring.Interval = 15 * time.Second
	}
	if c.Triage.ViewTTL == 0 {
		c.Triage.ViewTTL = 30 * time.Minute
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = scheduler.DefaultSchedule
	}
	if c.RateLimit.PerMinute == 0 {
		c.RateLimit.PerMinute = 300
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 50
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.MetricsAddress != "" && c.Server.MetricsAddress == c.Server.Address {
		return fmt.Errorf("server.metrics_address must differ from server.address")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console", "text":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if err := validateFeed("refresh.activity", c.Refresh.Activity); err != nil {
		return err
	}
	if err := validateFeed("refresh.monitoring", c.Refresh.Monitoring); err != nil {
		return err
	}
	if c.Refresh.Latency < 0 {
		return fmt.Errorf("refresh.latency must not be negative")
	}
	if c.Triage.ViewTTL < time.Minute {
		return fmt.Errorf("triage.view_ttl must be at least 1m")
	}
	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	return nil
}

func validateFeed(name string, cfg refresh.Config) error {
	if cfg.Interval < time.Second {
		return fmt.Errorf("%s.interval must be at least 1s", name)
	}
	if cfg.MaxItems < 0 {
		return fmt.Errorf("%s.max_items must not be negative", name)
	}
	return nil
}
