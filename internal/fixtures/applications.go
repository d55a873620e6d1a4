package fixtures

import (
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

// Applications returns the registered application list.
func Applications(now time.Time) []*models.Application {
	app := func(id, name string, status models.AppStatus, typ models.AppType, threats int, scanned time.Duration) *models.Application {
		return &models.Application{
			ID:        id,
			Name:      name,
			Status:    status,
			Type:      typ,
			Threats:   threats,
			LastScan:  now.Add(-scanned),
			Detection: models.DefaultDetectionConfig(),
			CreatedAt: now.Add(-30 * 24 * time.Hour),
		}
	}
	return []*models.Application{
		app("1", "Production API", models.AppActive, models.AppTypeAPI, 0, 2*time.Minute),
		app("2", "Customer Portal", models.AppActive, models.AppTypeWebApp, 2, 5*time.Minute),
		app("3", "Admin Dashboard", models.AppWarning, models.AppTypeWebApp, 1, 10*time.Minute),
		app("4", "Mobile API Gateway", models.AppActive, models.AppTypeAPI, 0, time.Minute),
		app("5", "Analytics Service", models.AppInactive, models.AppTypeService, 0, 2*time.Hour),
		app("6", "Payment Processor", models.AppActive, models.AppTypeAPI, 0, 3*time.Minute),
	}
}

// MonitoredApps returns the monitoring health grid.
func MonitoredApps(now time.Time) []*models.MonitoredApp {
	return []*models.MonitoredApp{
		{ID: 1, Name: "E-commerce Portal", Status: models.HealthHealthy, Health: 98, Threats: 5, LastChecked: now.Add(-2 * time.Minute), URL: "https://shop.example.com"},
		{ID: 2, Name: "Mobile App Backend", Status: models.HealthWarning, Health: 85, Threats: 12, LastChecked: now.Add(-time.Minute), URL: "https://api.mobile.example.com"},
		{ID: 3, Name: "Admin Dashboard", Status: models.HealthHealthy, Health: 95, Threats: 3, LastChecked: now.Add(-3 * time.Minute), URL: "https://admin.example.com"},
		{ID: 4, Name: "User Portal", Status: models.HealthCritical, Health: 65, Threats: 25, LastChecked: now.Add(-30 * time.Second), URL: "https://portal.example.com"},
		{ID: 5, Name: "Analytics Service", Status: models.HealthHealthy, Health: 99, Threats: 1, LastChecked: now.Add(-5 * time.Minute), URL: "https://analytics.example.com"},
		{ID: 6, Name: "Payment Gateway", Status: models.HealthHealthy, Health: 97, Threats: 2, LastChecked: now.Add(-time.Minute), URL: "https://payments.example.com"},
	}
}

// AppTraffic returns the per-application request/threat series.
func AppTraffic() []models.TrafficPoint {
	return []models.TrafficPoint{
		{Time: "00:00", Requests: 120, Threats: 0},
		{Time: "04:00", Requests: 89, Threats: 0},
		{Time: "08:00", Requests: 245, Threats: 1},
		{Time: "12:00", Requests: 389, Threats: 2},
		{Time: "16:00", Requests: 412, Threats: 0},
		{Time: "20:00", Requests: 301, Threats: 1},
	}
}

// AppEvents returns an application's recent events.
func AppEvents(now time.Time) []models.AppEvent {
	return []models.AppEvent{
		{ID: 1, Type: "success", Message: "Security scan completed", Timestamp: now.Add(-2 * time.Minute)},
		{ID: 2, Type: "warning", Message: "Unusual traffic pattern detected", Timestamp: now.Add(-15 * time.Minute)},
		{ID: 3, Type: "info", Message: "Configuration updated", Timestamp: now.Add(-time.Hour)},
		{ID: 4, Type: "success", Message: "Integration test passed", Timestamp: now.Add(-2 * time.Hour)},
	}
}
