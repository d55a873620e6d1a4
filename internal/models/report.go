package models

import "time"

// ReportType selects the focus of a generated report.
type ReportType string

const (
	ReportSecurity   ReportType = "security"
	ReportThreat     ReportType = "threat"
	ReportCompliance ReportType = "compliance"
	ReportCustom     ReportType = "custom"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportSecurity, ReportThreat, ReportCompliance, ReportCustom:
		return true
	}
	return false
}

// NamedCount is a labelled count used by distributions.
type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TrendPoint is one period of the threats-versus-resolved trend.
type TrendPoint struct {
	Date     string `json:"date"`
	Threats  int    `json:"threats"`
	Resolved int    `json:"resolved"`
}

// Report summarises the alerts raised within a date range.
type Report struct {
	Type           ReportType   `json:"type"`
	From           *time.Time   `json:"from,omitempty"`
	To             *time.Time   `json:"to,omitempty"`
	GeneratedAt    time.Time    `json:"generated_at"`
	TotalThreats   int          `json:"total_threats"`
	Resolved       int          `json:"resolved"`
	Active         int          `json:"active"`
	ResolutionRate float64      `json:"resolution_rate"`
	ByCategory     []NamedCount `json:"by_category"`
	BySeverity     []NamedCount `json:"by_severity"`
	Trend          []TrendPoint `json:"trend"`
	Alerts         []*Alert     `json:"alerts,omitempty"`
}
