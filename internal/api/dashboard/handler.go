// Package dashboard serves the navigation shell, the dashboard overview,
// the monitoring grid and chart datasets.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/charts"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/refresh"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/timeago"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// recentAlertLimit is how many alerts the overview shows.
const recentAlertLimit = 5

// Metric titles
const (
	MetricActiveThreats   = "Active Threats"
	MetricMonitoredApps   = "Monitored Apps"
	MetricSystemHealth    = "System Health"
	MetricDetectionRate   = "Detection Rate"
	MetricActiveMonitors  = "Active Monitoring"
	MetricThreatDetection = "Threat Detection"
	MetricResponseTime    = "Response Time"
)

// MonitoringFeed is the monitoring poller as seen by the handler.
type MonitoringFeed interface {
	Snapshot() refresh.Snapshot[*models.MonitoredApp]
	Refresh(ctx context.Context) (refresh.Snapshot[*models.MonitoredApp], error)
}

// ActivityFeed exposes the latest activity snapshot.
type ActivityFeed interface {
	Snapshot() refresh.Snapshot[*models.Activity]
}

// RecentAlert is an overview row.
type RecentAlert struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Application string          `json:"application,omitempty"`
	Severity    models.Severity `json:"severity"`
	TimeAgo     string          `json:"time_ago"`
}

// ActivityItem is an activity entry with its relative timestamp.
type ActivityItem struct {
	*models.Activity
	TimeAgo string `json:"time_ago"`
}

// Overview is the dashboard page payload.
type Overview struct {
	Metrics      []models.Metric `json:"metrics"`
	RecentAlerts []RecentAlert   `json:"recent_alerts"`
	Summary      triage.Summary  `json:"summary"`
	Activity     []ActivityItem  `json:"activity"`
}

// MonitoredItem is a monitoring grid cell with its derived display state.
type MonitoredItem struct {
	*models.MonitoredApp
	HealthBand      string `json:"health_band"`
	ElevatedThreats bool   `json:"elevated_threats"`
	CheckedAgo      string `json:"checked_ago"`
}

// MonitoringResponse is the monitoring page payload.
type MonitoringResponse struct {
	Metrics   []models.Metric `json:"metrics"`
	Apps      []MonitoredItem `json:"apps"`
	Loading   bool            `json:"loading"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Handler handles dashboard endpoints.
type Handler struct {
	storage    storage.Storage
	monitoring MonitoringFeed
	activity   ActivityFeed
	log        *zap.Logger
	now        func() time.Time
}

// NewHandler creates a dashboard handler.
func NewHandler(store storage.Storage, monitoring MonitoringFeed, activity ActivityFeed, log *zap.Logger) *Handler {
	return &Handler{
		storage:    store,
		monitoring: monitoring,
		activity:   activity,
		log:        log,
		now:        time.Now,
	}
}

// Navigation returns the route table with ?current= marked active.
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	current := r.URL.Query().Get("current")
	if current == "" {
		current = "/dashboard"
	}
	response.OK(w, models.NavigationFor(current))
}

// Overview gathers alerts, applications and feed snapshots concurrently.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	var (
		alerts []*models.Alert
		apps   []*models.Application
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		alerts, err = h.storage.Alerts().List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = h.storage.Applications().List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		response.Fail(w, h.log, err)
		return
	}

	now := h.now()
	summary := triage.Summarize(alerts)
	monitored := h.monitoring.Snapshot()

	overview := Overview{
		Metrics: []models.Metric{
			{Title: MetricActiveThreats, Value: strconv.Itoa(summary.New + summary.Investigating)},
			{Title: MetricMonitoredApps, Value: strconv.Itoa(len(apps))},
			healthMetric(monitored),
			{Title: MetricDetectionRate, Value: "94.2%", Change: &models.Change{Value: "1.2%", Type: models.ChangeIncrease}},
		},
		RecentAlerts: make([]RecentAlert, 0, recentAlertLimit),
		Summary:      summary,
		Activity:     []ActivityItem{},
	}

	for i, a := range alerts {
		if i == recentAlertLimit {
			break
		}
		overview.RecentAlerts = append(overview.RecentAlerts, RecentAlert{
			ID:          a.ID,
			Title:       a.Title,
			Application: a.Application,
			Severity:    a.Severity,
			TimeAgo:     timeago.Format(a.Timestamp, now),
		})
	}
	for _, a := range h.activity.Snapshot().Items {
		overview.Activity = append(overview.Activity, ActivityItem{Activity: a, TimeAgo: timeago.Format(a.Timestamp, now)})
	}

	response.OK(w, overview)
}

// Monitoring returns the health grid. Metrics stay in their loading state
// until the feed has loaded once.
func (h *Handler) Monitoring(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.monitoringResponse(h.monitoring.Snapshot()))
}

// RefreshMonitoring reloads the monitoring feed now.
func (h *Handler) RefreshMonitoring(w http.ResponseWriter, r *http.Request) {
	snap, err := h.monitoring.Refresh(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, h.monitoringResponse(snap))
}

// Chart returns the dataset for /charts/{kind}; ?height= overrides the default.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	kind, err := charts.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	height := 0
	if s := r.URL.Query().Get("height"); s != "" {
		height, err = strconv.Atoi(s)
		if err != nil || height < 0 {
			response.JSONError(w, response.NewBadRequest("height must be a non-negative integer"))
			return
		}
	}

	chart, err := charts.Build(kind, height)
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, chart)
}

func (h *Handler) monitoringResponse(snap refresh.Snapshot[*models.MonitoredApp]) MonitoringResponse {
	now := h.now()
	resp := MonitoringResponse{
		Apps:      make([]MonitoredItem, 0, len(snap.Items)),
		Loading:   snap.Loading,
		UpdatedAt: snap.UpdatedAt,
	}
	for _, app := range snap.Items {
		resp.Apps = append(resp.Apps, MonitoredItem{
			MonitoredApp:    app,
			HealthBand:      app.HealthBand(),
			ElevatedThreats: app.ElevatedThreats(),
			CheckedAgo:      timeago.Format(app.LastChecked, now),
		})
	}

	if snap.UpdatedAt.IsZero() {
		resp.Metrics = []models.Metric{
			models.LoadingMetric(MetricSystemHealth),
			models.LoadingMetric(MetricActiveMonitors),
			models.LoadingMetric(MetricThreatDetection),
			models.LoadingMetric(MetricResponseTime),
		}
		return resp
	}

	threats := 0
	for _, app := range snap.Items {
		threats += app.Threats
	}
	resp.Metrics = []models.Metric{
		healthMetric(snap),
		{Title: MetricActiveMonitors, Value: strconv.Itoa(len(snap.Items))},
		{Title: MetricThreatDetection, Value: strconv.Itoa(threats)},
		{Title: MetricResponseTime, Value: "145ms", Change: &models.Change{Value: "12ms", Type: models.ChangeDecrease}},
	}
	return resp
}

// healthMetric averages the monitored applications' health.
func healthMetric(snap refresh.Snapshot[*models.MonitoredApp]) models.Metric {
	if snap.UpdatedAt.IsZero() || len(snap.Items) == 0 {
		return models.LoadingMetric(MetricSystemHealth)
	}
	total := 0
	for _, app := range snap.Items {
		total += app.Health
	}
	avg := float64(total) / float64(len(snap.Items))
	return models.Metric{Title: MetricSystemHealth, Value: fmt.Sprintf("%.1f%%", avg)}
}
