// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/metrics"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

// DefaultSchedule purges once an hour.
const DefaultSchedule = "@hourly"

// Retention deletes alerts older than the configured data retention period.
type Retention struct {
	store    storage.Storage
	schedule string
	log      *zap.Logger
	now      func() time.Time
}

// NewRetention creates a retention job. The schedule accepts standard
// five-field cron specs and descriptors such as "@every 30m".
func NewRetention(store storage.Storage, schedule string, log *zap.Logger) (*Retention, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Retention{
		store:    store,
		schedule: schedule,
		log:      log.Named("retention"),
		now:      time.Now,
	}, nil
}

// Purge deletes alerts raised before now minus Settings.DataRetentionDays.
func (r *Retention) Purge(ctx context.Context) (int64, error) {
	settings, err := r.store.Settings().Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}

	cutoff := r.now().Add(-settings.Retention())
	deleted, err := r.store.Alerts().DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge alerts: %w", err)
	}
	metrics.RetentionPurgedTotal.Add(float64(deleted))
	if deleted > 0 {
		r.log.Info("purged expired alerts",
			zap.Int64("deleted", deleted),
			zap.Int("retention_days", settings.DataRetentionDays),
			zap.Time("cutoff", cutoff),
		)
	}
	return deleted, nil
}

// Run schedules Purge and blocks until ctx is cancelled, then waits for a
// running purge to finish.
func (r *Retention) Run(ctx context.Context) error {
	logger := cronLogger{r.log}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))

	if _, err := c.AddFunc(r.schedule, func() {
		if _, err := r.Purge(ctx); err != nil && ctx.Err() == nil {
			r.log.Error("retention purge failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule retention: %w", err)
	}

	c.Start()
	r.log.Info("retention scheduler running", zap.String("schedule", r.schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	r.log.Info("retention scheduler stopped")
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
