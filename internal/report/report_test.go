package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/models"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseRange(t *testing.T) {
	rng, err := ParseRange("2026-03-01", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), rng.From)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999999999, time.UTC), rng.To)
	assert.True(t, rng.Contains(now))
	assert.False(t, rng.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))

	rng, err = ParseRange("", "2026-03-10T11:00:00Z")
	require.NoError(t, err)
	assert.True(t, rng.From.IsZero())
	assert.False(t, rng.Contains(now))

	rng, err = ParseRange("", "")
	require.NoError(t, err)
	assert.False(t, rng.Enabled())

	_, err = ParseRange("03/01/2026", "")
	assert.Error(t, err)

	_, err = ParseRange("2026-03-10", "2026-03-01")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	alerts := fixtures.Alerts(now)

	rep := Build(alerts, "", DateRange{}, now)
	assert.Equal(t, models.ReportSecurity, rep.Type)
	assert.Equal(t, 5, rep.TotalThreats)
	assert.Equal(t, 2, rep.Resolved)
	assert.Equal(t, 3, rep.Active)
	assert.Equal(t, 40.0, rep.ResolutionRate)
	assert.Nil(t, rep.From)
	assert.Len(t, rep.Trend, 6)
	require.Len(t, rep.BySeverity, 4)
	assert.Equal(t, models.NamedCount{Name: "critical", Value: 2}, rep.BySeverity[3])
	require.Len(t, rep.ByCategory, 5)

	rep = Build(alerts, models.ReportThreat, DateRange{From: now.Add(-20 * time.Minute)}, now)
	assert.Equal(t, 2, rep.TotalThreats)
	assert.Equal(t, 0.0, rep.ResolutionRate)
	require.NotNil(t, rep.From)

	rep = Build(alerts, models.ReportThreat, DateRange{To: now.Add(-24 * time.Hour)}, now)
	assert.Zero(t, rep.TotalThreats)
	assert.Empty(t, rep.Alerts)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", f.ContentType())
	assert.Equal(t, "security-report-20260310-120000.csv", f.Filename(now))

	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = ParseFormat("xml")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExportCSV(t *testing.T) {
	rep := Build(fixtures.Alerts(now), models.ReportSecurity, DateRange{}, now)

	var buf bytes.Buffer
	require.NoError(t, NewExporter(FormatCSV, &buf).Export(rep))

	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	header := -1
	for i, rec := range records {
		if len(rec) > 0 && rec[0] == "# Alerts" {
			header = i + 1
		}
	}
	require.Positive(t, header)
	assert.Equal(t, AlertHeader, records[header])
	assert.Len(t, records[header+1:], 5)
	assert.Equal(t, "critical", records[header+1][2])
}

func TestExportJSON(t *testing.T) {
	rep := Build(fixtures.Alerts(now), models.ReportSecurity, DateRange{}, now)

	var buf bytes.Buffer
	require.NoError(t, NewExporter(FormatJSON, &buf).Export(rep))

	var got models.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.TotalThreats)

	err := NewExporter(FormatPDF, &buf).Export(rep)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
