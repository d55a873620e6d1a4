package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

func setupRouter(t *testing.T) (http.Handler, storage.Storage) {
	t.Helper()

	store := storage.NewSQLiteStorage(storage.MemoryPath)
	require.NoError(t, store.Open())
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())
	_, err := store.EnsureSeeded(context.Background(), time.Now())
	require.NoError(t, err)

	h := NewHandler(store, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/applications", h.List)
	r.Post("/applications", h.Create)
	r.Get("/applications/{id}", h.Get)
	r.Put("/applications/{id}/config", h.UpdateConfig)
	return r, store
}

func do[T any](t *testing.T, router http.Handler, method, path string, body any) (int, T) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))

	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env.Data
}

func names(items []AppItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestList(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Production API", "Customer Portal", "Admin Dashboard", "Mobile API Gateway", "Analytics Service", "Payment Processor"}},
		{"?q=admin&status=all", []string{"Admin Dashboard"}},
		{"?status=inactive", []string{"Analytics Service"}},
		{"?q=API", []string{"Production API", "Mobile API Gateway"}},
		{"?status=active&q=portal", []string{"Customer Portal"}},
		{"?status=archived", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, resp := do[ListResponse](t, router, "GET", "/applications"+tt.query, nil)
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.want, names(resp.Items))
			assert.Equal(t, len(tt.want), resp.Total)
		})
	}
}

func TestCreate(t *testing.T) {
	router, store := setupRouter(t)

	code, app := do[AppItem](t, router, "POST", "/applications", map[string]string{"name": "Billing", "type": "Web App"})
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.AppActive, app.Status)
	assert.Equal(t, models.AppTypeWebApp, app.Type)
	assert.Equal(t, models.DefaultDetectionConfig(), app.Detection)
	assert.Equal(t, "Just now", app.ScannedAgo)

	n, err := store.Applications().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	code, _ = do[AppItem](t, router, "POST", "/applications", map[string]string{"name": "", "type": "API"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do[AppItem](t, router, "POST", "/applications", map[string]string{"name": "X", "type": "Desktop"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGet(t *testing.T) {
	router, _ := setupRouter(t)

	code, detail := do[DetailResponse](t, router, "GET", "/applications/3", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Admin Dashboard", detail.Name)
	assert.Len(t, detail.Traffic, 6)
	require.Len(t, detail.Events, 4)
	assert.Equal(t, "2m ago", detail.Events[0].TimeAgo)

	code, _ = do[DetailResponse](t, router, "GET", "/applications/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdateConfig(t *testing.T) {
	router, _ := setupRouter(t)

	body := map[string]any{"threat_threshold": 40, "auto_block": false, "real_time_monitoring": true}
	code, app := do[AppItem](t, router, "PUT", "/applications/1/config", body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.DetectionConfig{ThreatThreshold: 40, AutoBlock: false, RealTimeMonitoring: true}, app.Detection)

	_, detail := do[DetailResponse](t, router, "GET", "/applications/1", nil)
	assert.Equal(t, 40, detail.Detection.ThreatThreshold)

	body["threat_threshold"] = 101
	code, _ = do[AppItem](t, router, "PUT", "/applications/1/config", body)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do[AppItem](t, router, "PUT", "/applications/1/config", map[string]any{"threat_threshold": 10})
	assert.Equal(t, http.StatusBadRequest, code)

	body["threat_threshold"] = 50
	code, _ = do[AppItem](t, router, "PUT", "/applications/nope/config", body)
	assert.Equal(t, http.StatusNotFound, code)
}
