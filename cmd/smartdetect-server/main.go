// Package main provides the SmartDetect API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/smartdetect/internal/api"
	"github.com/good-yellow-bee/smartdetect/internal/api/health"
	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/logging"
	"github.com/good-yellow-bee/smartdetect/internal/metrics"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/refresh"
	"github.com/good-yellow-bee/smartdetect/internal/scheduler"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
	"github.com/good-yellow-bee/smartdetect/internal/watcher"
	"github.com/good-yellow-bee/smartdetect/pkg/config"
)

var (
	configFile string
	httpAddr   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "smartdetect-server",
	Short: "SmartDetect Server - security alert dashboard API",
	Long: `SmartDetect Server serves the alert triage, activity feed, monitoring,
application, report and settings APIs behind the SmartDetect dashboard.`,
	SilenceUsage: true,
	RunE:         runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.VersionString("smartdetect-server"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg *Config

	// Load configuration from file if provided
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = DefaultConfig()
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.Server.Address = httpAddr
	}
	cfg.Verbose = verbose

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	metrics.SetBuildInfo(config.Version, config.Commit, config.BuildTime)

	store, err := openStore(cmd.Context(), cfg.Database.Path, log)
	if err != nil {
		return err
	}
	defer store.Close()

	activityFeed := refresh.NewPoller[*models.Activity]("activity",
		refresh.MockLoader[*models.Activity]{Delay: cfg.Refresh.Latency, Source: fixtures.Activities},
		cfg.Refresh.Activity, log)
	monitoringFeed := refresh.NewPoller[*models.MonitoredApp]("monitoring",
		refresh.MockLoader[*models.MonitoredApp]{Delay: cfg.Refresh.Latency, Source: fixtures.MonitoredApps},
		cfg.Refresh.Monitoring, log)

	views := triage.NewViewStore(cfg.Triage.ViewTTL)
	defer views.Close()

	srv, err := api.New(&api.Config{
		Address:            cfg.Server.Address,
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
		RateLimitBurst:     cfg.RateLimit.Burst,
		StreamMaxDuration:  cfg.Server.StreamMaxDuration,
		StreamHeartbeat:    cfg.Server.StreamHeartbeat,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		Verbose:            cfg.Verbose,
	}, api.Deps{
		Storage:    store,
		Views:      views,
		Activity:   activityFeed,
		Monitoring: monitoringFeed,
		Log:        log,
	})
	if err != nil {
		return fmt.Errorf("create api server: %w", err)
	}
	srv.RegisterHealthChecker(health.NewSQLiteChecker(store.DB()))
	srv.RegisterHealthChecker(health.NewFeedChecker(activityFeed.Name(), func() time.Time { return activityFeed.Snapshot().UpdatedAt }))
	srv.RegisterHealthChecker(health.NewFeedChecker(monitoringFeed.Name(), func() time.Time { return monitoringFeed.Snapshot().UpdatedAt }))

	// Setup signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	activityFeed.Start(ctx)
	defer activityFeed.Stop()
	monitoringFeed.Start(ctx)
	defer monitoringFeed.Stop()

	g.Go(func() error { return srv.Run(ctx) })

	if cfg.Server.MetricsAddress != "" {
		ms := metrics.NewServer(cfg.Server.MetricsAddress, log)
		g.Go(func() error { return ms.Run(ctx) })
	}

	if cfg.Retention.Enabled {
		retention, err := scheduler.NewRetention(store, cfg.Retention.Schedule, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return retention.Run(ctx) })
	}

	if configFile != "" && cfg.WatchConfig {
		fw, err := watcher.New(configFile, watcher.DefaultDebounce, func() {
			reloadFeeds(log, activityFeed, monitoringFeed)
		}, log)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		g.Go(func() error { return fw.Run(ctx) })
	}

	log.Info("starting smartdetect-server",
		zap.String("version", config.Version),
		zap.String("address", cfg.Server.Address),
		zap.String("database", cfg.Database.Path),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// openStore opens and migrates the database and seeds it on first run.
func openStore(ctx context.Context, path string, log *zap.Logger) (*storage.SQLiteStorage, error) {
	if path != storage.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	store := storage.NewSQLiteStorage(path)
	if err := store.Open(); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	password, err := store.EnsureSeeded(ctx, time.Now())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}
	if password != "" {
		log.Warn("generated initial profile password; change it via PUT /api/v1/profile/password",
			zap.String("password", password))
	}

	log.Info("database initialized", zap.String("path", path))
	return store, nil
}

// reloadFeeds re-reads the refresh section of the config file and applies it.
func reloadFeeds(log *zap.Logger, activity *refresh.Poller[*models.Activity], monitoring *refresh.Poller[*models.MonitoredApp]) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		log.Warn("config reload failed; keeping current settings", zap.Error(err))
		return
	}
	activity.Reconfigure(cfg.Refresh.Activity)
	monitoring.Reconfigure(cfg.Refresh.Monitoring)
	log.Info("refresh settings reloaded",
		zap.Bool("activity_auto_refresh", cfg.Refresh.Activity.AutoRefresh),
		zap.Duration("activity_interval", cfg.Refresh.Activity.Interval),
		zap.Bool("monitoring_auto_refresh", cfg.Refresh.Monitoring.AutoRefresh),
		zap.Duration("monitoring_interval", cfg.Refresh.Monitoring.Interval),
	)
}
