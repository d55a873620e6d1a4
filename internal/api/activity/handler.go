// Package activity serves the live activity feed, as a snapshot and as an
// event stream.
package activity

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/metrics"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/refresh"
	"github.com/good-yellow-bee/smartdetect/internal/timeago"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// Feed is the activity poller as seen by the handler.
type Feed interface {
	Snapshot() refresh.Snapshot[*models.Activity]
	Refresh(ctx context.Context) (refresh.Snapshot[*models.Activity], error)
	Subscribe() (<-chan refresh.Snapshot[*models.Activity], func())
}

// Item is an activity entry with its relative timestamp.
type Item struct {
	*models.Activity
	TimeAgo string `json:"time_ago"`
}

// SnapshotResponse is the feed state sent to clients.
type SnapshotResponse struct {
	Items       []Item    `json:"items"`
	Total       int       `json:"total"`
	Loading     bool      `json:"loading"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastUpdated string    `json:"last_updated,omitempty"`
}

// StreamConfig bounds event stream connections.
type StreamConfig struct {
	MaxDuration       time.Duration
	HeartbeatInterval time.Duration
}

// Handler handles activity endpoints.
type Handler struct {
	feed   Feed
	log    *zap.Logger
	stream StreamConfig
	now    func() time.Time
}

// NewHandler creates an activity handler.
func NewHandler(feed Feed, cfg StreamConfig, log *zap.Logger) *Handler {
	if cfg.MaxDuration == 0 {
		cfg.MaxDuration = 30 * time.Minute
	}
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = 15 * time.Second
	}
	return &Handler{feed: feed, log: log, stream: cfg, now: time.Now}
}

// Get returns the latest snapshot, optionally filtered by severity, type and q.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.snapshot(h.feed.Snapshot(), filterFromQuery(r)))
}

// Refresh loads the feed now.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.feed.Refresh(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, h.snapshot(snap, filterFromQuery(r)))
}

// Stream sends the current snapshot and then every newly applied one as
// "snapshot" events until the client leaves or the stream times out.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.JSONError(w, &response.Error{
			Code:    response.ErrCodeInternalError,
			Message: "streaming not supported",
			Status:  http.StatusInternalServerError,
		})
		return
	}

	ctx := r.Context()
	filter := filterFromQuery(r)

	updates, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	metrics.SSEClientsActive.Inc()
	defer metrics.SSEClientsActive.Dec()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sse := NewSSEWriter(w, flusher)
	if err := sse.SendRetry(3000); err != nil {
		return
	}
	if err := sse.SendJSON("snapshot", h.snapshot(h.feed.Snapshot(), filter)); err != nil {
		h.log.Debug("activity stream write failed", zap.Error(err))
		return
	}

	heartbeat := time.NewTicker(h.stream.HeartbeatInterval)
	defer heartbeat.Stop()
	deadline := time.NewTimer(h.stream.MaxDuration)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			sse.SendEvent("close", `{"reason":"timeout"}`)
			return
		case <-heartbeat.C:
			if err := sse.SendComment("heartbeat"); err != nil {
				return
			}
		case snap := <-updates:
			if err := sse.SendJSON("snapshot", h.snapshot(snap, filter)); err != nil {
				h.log.Debug("activity stream write failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) snapshot(snap refresh.Snapshot[*models.Activity], filter triage.Filter) SnapshotResponse {
	now := h.now()
	visible := triage.Apply(snap.Items, filter)

	items := make([]Item, 0, len(visible))
	for _, a := range visible {
		items = append(items, Item{Activity: a, TimeAgo: timeago.Format(a.Timestamp, now)})
	}

	resp := SnapshotResponse{
		Items:     items,
		Total:     len(items),
		Loading:   snap.Loading,
		UpdatedAt: snap.UpdatedAt,
	}
	if !snap.UpdatedAt.IsZero() {
		resp.LastUpdated = timeago.Format(snap.UpdatedAt, now)
	}
	return resp
}

func filterFromQuery(r *http.Request) triage.Filter {
	q := r.URL.Query()
	// Activity types are matched through the category key.
	return triage.NewFilter(q.Get("severity"), "", q.Get("type"), q.Get("q"))
}
