package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

// run executes smartctl with flag globals reset to their defaults.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose, output, dbPath = false, "table", ""
	alertSeverity, alertStatus, alertCategory, alertSearch, alertExpr = "all", "all", "all", "", ""
	appStatus, appSearch = "all", ""
	reportFormat, reportFrom, reportTo, reportType, reportOut = "csv", "", "", string(models.ReportSecurity), ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "smartctl "))

	out, err = run(t, "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "go_version")
}

func TestAlertsList(t *testing.T) {
	out, err := run(t, "alerts", "list", "--severity", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "SQL Injection")
	assert.Contains(t, out, "Malware Signature Detected")
	assert.NotContains(t, out, "Brute Force")
	assert.Contains(t, out, "Total: 2 alert(s)")
	assert.NotContains(t, out, "\x1b[", "no colour when not a terminal")

	out, err = run(t, "alerts", "list", "--expr", "risk_score < 70", "-o", "json")
	require.NoError(t, err)
	var alerts []models.Alert
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Unusual API Usage Pattern", alerts[0].Title)

	out, err = run(t, "alerts", "list", "--search", "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No alerts found.")

	_, err = run(t, "alerts", "list", "--expr", "risk_score >")
	assert.Error(t, err)
}

func TestAppsList(t *testing.T) {
	out, err := run(t, "apps", "list", "--search", "admin", "--status", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin Dashboard")
	assert.Contains(t, out, "Total: 1 application(s)")
}

func TestAppsList_Database(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartdetect.db")
	store := storage.NewSQLiteStorage(path)
	require.NoError(t, store.Open())
	require.NoError(t, store.Migrate())
	_, err := store.EnsureSeeded(context.Background(), time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Applications().Create(context.Background(), &models.Application{
		ID: "new-app", Name: "Billing", Status: models.AppActive, Type: models.AppTypeService,
		Detection: models.DefaultDetectionConfig(), LastScan: time.Now(), CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Close())

	out, err := run(t, "apps", "list", "--db", path, "-o", "json")
	require.NoError(t, err)
	var apps []models.Application
	require.NoError(t, json.Unmarshal([]byte(out), &apps))
	assert.Len(t, apps, 7)

	_, err = run(t, "apps", "list", "--db", filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestReportExport(t *testing.T) {
	out, err := run(t, "report", "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Summary"))
	assert.Contains(t, out, "id,timestamp,severity,status,category,title,application,ip,risk_score")

	file := filepath.Join(t.TempDir(), "report.json")
	_, err = run(t, "report", "export", "--format", "json", "--type", "threat", "--out", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var rep models.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, models.ReportThreat, rep.Type)
	assert.Equal(t, 5, rep.TotalThreats)

	_, err = run(t, "report", "export", "--format", "pdf")
	assert.Error(t, err)
	_, err = run(t, "report", "export", "--type", "weekly")
	assert.Error(t, err)
	_, err = run(t, "report", "export", "--from", "tomorrow")
	assert.Error(t, err)
}
