package reports

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/report"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	store := storage.NewSQLiteStorage(storage.MemoryPath)
	require.NoError(t, store.Open())
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())
	_, err := store.EnsureSeeded(context.Background(), time.Now())
	require.NoError(t, err)

	h := NewHandler(store, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/reports", h.Summary)
	r.Get("/reports/export", h.Export)
	return r
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestSummary(t *testing.T) {
	router := setupRouter(t)

	rec := get(t, router, "/reports?type=threat")
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data models.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, models.ReportThreat, env.Data.Type)
	assert.Equal(t, 5, env.Data.TotalThreats)
	assert.Equal(t, 40.0, env.Data.ResolutionRate)

	from := time.Now().Add(-20 * time.Minute).UTC().Format(time.RFC3339)
	rec = get(t, router, "/reports?from="+from)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Data.TotalThreats)

	rec = get(t, router, "/reports?to=2000-01-01")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Zero(t, env.Data.TotalThreats)

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/reports?type=weekly").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/reports?from=yesterday").Code)
}

func TestExport(t *testing.T) {
	router := setupRouter(t)

	rec := get(t, router, "/reports/export?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	r := csv.NewReader(strings.NewReader(rec.Body.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"# Summary"}, records[0])
	assert.Contains(t, records, report.AlertHeader)

	rec = get(t, router, "/reports/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var rep models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Len(t, rep.Alerts, 5)

	assert.Equal(t, http.StatusNotImplemented, get(t, router, "/reports/export?format=pdf").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/reports/export?format=xml").Code)
}
