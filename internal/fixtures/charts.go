package fixtures

import "github.com/good-yellow-bee/smartdetect/internal/models"

// TimeSeriesPoint is one bucket of the security events series.
type TimeSeriesPoint struct {
	Time      string `json:"time"`
	Threats   int    `json:"threats"`
	Anomalies int    `json:"anomalies"`
	Normal    int    `json:"normal"`
}

// ThreatShare is one slice of the threat distribution.
type ThreatShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// AppHealthPoint is one bar of the application health chart.
type AppHealthPoint struct {
	Name    string `json:"name"`
	Health  int    `json:"health"`
	Threats int    `json:"threats"`
}

// SecurityTimeSeries backs the line and area charts.
func SecurityTimeSeries() []TimeSeriesPoint {
	return []TimeSeriesPoint{
		{Time: "00:00", Threats: 12, Anomalies: 3, Normal: 450},
		{Time: "04:00", Threats: 8, Anomalies: 5, Normal: 380},
		{Time: "08:00", Threats: 15, Anomalies: 8, Normal: 620},
		{Time: "12:00", Threats: 23, Anomalies: 12, Normal: 750},
		{Time: "16:00", Threats: 18, Anomalies: 6, Normal: 680},
		{Time: "20:00", Threats: 10, Anomalies: 4, Normal: 520},
	}
}

// ThreatDistribution backs the pie chart.
func ThreatDistribution() []ThreatShare {
	return []ThreatShare{
		{Name: "SQL Injection", Value: 35, Color: "#ef4444"},
		{Name: "XSS Attempts", Value: 25, Color: "#f59e0b"},
		{Name: "Brute Force", Value: 20, Color: "#f56500"},
		{Name: "DDoS", Value: 15, Color: "#1a365d"},
		{Name: "Other", Value: 5, Color: "#475569"},
	}
}

// ApplicationHealth backs the bar chart.
func ApplicationHealth() []AppHealthPoint {
	return []AppHealthPoint{
		{Name: "E-commerce", Health: 98, Threats: 5},
		{Name: "Mobile API", Health: 95, Threats: 8},
		{Name: "Admin Panel", Health: 92, Threats: 12},
		{Name: "User Portal", Health: 99, Threats: 2},
		{Name: "Analytics", Health: 96, Threats: 6},
	}
}

// ThreatTrend is the monthly threats-versus-resolved series used by reports.
func ThreatTrend() []models.TrendPoint {
	return []models.TrendPoint{
		{Date: "Jan", Threats: 24, Resolved: 22},
		{Date: "Feb", Threats: 18, Resolved: 18},
		{Date: "Mar", Threats: 32, Resolved: 28},
		{Date: "Apr", Threats: 21, Resolved: 21},
		{Date: "May", Threats: 15, Resolved: 15},
		{Date: "Jun", Threats: 28, Resolved: 25},
	}
}
