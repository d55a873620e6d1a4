package models

import "time"

// AppStatus is the registration state of an application.
type AppStatus string

const (
	AppActive   AppStatus = "active"
	AppWarning  AppStatus = "warning"
	AppInactive AppStatus = "inactive"
)

// Valid reports whether s is a known application status.
func (s AppStatus) Valid() bool {
	switch s {
	case AppActive, AppWarning, AppInactive:
		return true
	}
	return false
}

// AppType is the kind of registered application.
type AppType string

const (
	AppTypeAPI     AppType = "API"
	AppTypeWebApp  AppType = "Web App"
	AppTypeService AppType = "Service"
)

// Detection defaults applied to newly registered applications.
const (
	DefaultThreatThreshold = 75
)

// DetectionConfig holds the per-application detection parameters.
type DetectionConfig struct {
	ThreatThreshold    int  `json:"threat_threshold"`
	AutoBlock          bool `json:"auto_block"`
	RealTimeMonitoring bool `json:"real_time_monitoring"`
}

// DefaultDetectionConfig returns the configuration a new application starts with.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		ThreatThreshold:    DefaultThreatThreshold,
		AutoBlock:          true,
		RealTimeMonitoring: true,
	}
}

// Application is a registered application under protection.
type Application struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Status    AppStatus       `json:"status"`
	Type      AppType         `json:"type"`
	Threats   int             `json:"threats"`
	LastScan  time.Time       `json:"last_scan"`
	Detection DetectionConfig `json:"detection"`
	CreatedAt time.Time       `json:"created_at"`
}

func (a *Application) RecordID() string { return a.ID }

func (a *Application) FilterValues() map[string]string {
	return map[string]string{"status": string(a.Status)}
}

// SearchFields implements triage.Record. Applications are searched by name only.
func (a *Application) SearchFields() []string {
	return []string{a.Name}
}

// AppEvent is an entry of an application's recent events list.
type AppEvent struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"` // success, warning, info
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TrafficPoint is one bucket of an application's request/threat series.
type TrafficPoint struct {
	Time     string `json:"time"`
	Requests int    `json:"requests"`
	Threats  int    `json:"threats"`
}

// HealthStatus is the live state of a monitored application.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// MonitoredApp is a row of the monitoring health grid.
type MonitoredApp struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Status      HealthStatus `json:"status"`
	Health      int          `json:"health"`
	Threats     int          `json:"threats"`
	LastChecked time.Time    `json:"last_checked"`
	URL         string       `json:"url"`
}

// HealthBand buckets the health percentage: good at 95 and above, warn at 80 and above.
func (m *MonitoredApp) HealthBand() string {
	switch {
	case m.Health >= 95:
		return "good"
	case m.Health >= 80:
		return "warn"
	default:
		return "bad"
	}
}

// ElevatedThreats reports whether the threat count warrants emphasis.
func (m *MonitoredApp) ElevatedThreats() bool {
	return m.Threats > 10
}
