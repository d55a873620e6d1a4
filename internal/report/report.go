// Package report builds alert summaries over a date range and exports them.
package report

import (
	"math"
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/models"
)

// Build summarises the alerts inside rng. Resolved counts resolved and
// false-positive alerts; Active counts new and investigating ones.
func Build(alerts []*models.Alert, typ models.ReportType, rng DateRange, now time.Time) *models.Report {
	if typ == "" {
		typ = models.ReportSecurity
	}
	rep := &models.Report{
		Type:        typ,
		GeneratedAt: now,
		Trend:       fixtures.ThreatTrend(),
		Alerts:      make([]*models.Alert, 0, len(alerts)),
	}
	if !rng.From.IsZero() {
		from := rng.From
		rep.From = &from
	}
	if !rng.To.IsZero() {
		to := rng.To
		rep.To = &to
	}

	byCategory := make(map[models.Category]int)
	bySeverity := make(map[models.Severity]int)
	for _, a := range alerts {
		if !rng.Contains(a.Timestamp) {
			continue
		}
		rep.Alerts = append(rep.Alerts, a)
		byCategory[a.Category]++
		bySeverity[a.Severity]++

		switch a.Status {
		case models.StatusResolved, models.StatusFalsePositive:
			rep.Resolved++
		default:
			rep.Active++
		}
	}
	rep.TotalThreats = len(rep.Alerts)
	if rep.TotalThreats > 0 {
		rate := float64(rep.Resolved) / float64(rep.TotalThreats) * 100
		rep.ResolutionRate = math.Round(rate*10) / 10
	}

	for _, c := range models.Categories {
		rep.ByCategory = append(rep.ByCategory, models.NamedCount{Name: string(c), Value: byCategory[c]})
	}
	for _, s := range models.Severities {
		rep.BySeverity = append(rep.BySeverity, models.NamedCount{Name: string(s), Value: bySeverity[s]})
	}
	return rep
}
