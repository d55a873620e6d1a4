// Package fixtures generates the mock datasets served by SmartDetect.
// Every generator takes the reference time so that relative timestamps
// ("5 minutes ago") are stable for one generation.
package fixtures

import (
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

// Alerts returns the security alert list.
func Alerts(now time.Time) []*models.Alert {
	return []*models.Alert{
		{
			ID:          "1",
			Title:       "SQL Injection Attempt Detected",
			Description: "Malicious SQL injection detected in login form",
			Severity:    models.SeverityCritical,
			Status:      models.StatusNew,
			Category:    models.CategoryInjection,
			Application: "E-commerce Portal",
			Timestamp:   now.Add(-5 * time.Minute),
			IP:          "192.168.1.100",
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			Details:     models.AlertDetails{RiskScore: 95, AffectedUsers: 1, BlockedRequests: 15},
		},
		{
			ID:          "2",
			Title:       "Brute Force Attack",
			Description: "Multiple failed login attempts from single IP",
			Severity:    models.SeverityHigh,
			Status:      models.StatusInvestigating,
			Category:    models.CategoryAuthentication,
			Application: "Admin Dashboard",
			Timestamp:   now.Add(-15 * time.Minute),
			IP:          "203.0.113.42",
			UserAgent:   "Python-requests/2.25.1",
			Details:     models.AlertDetails{RiskScore: 85, AffectedUsers: 3, BlockedRequests: 45},
		},
		{
			ID:          "3",
			Title:       "Unusual API Usage Pattern",
			Description: "API calls exceeded normal threshold by 300%",
			Severity:    models.SeverityMedium,
			Status:      models.StatusNew,
			Category:    models.CategoryAnomaly,
			Application: "Mobile App Backend",
			Timestamp:   now.Add(-30 * time.Minute),
			IP:          "198.51.100.25",
			Details:     models.AlertDetails{RiskScore: 65, AffectedUsers: 12},
		},
		{
			ID:          "4",
			Title:       "Malware Signature Detected",
			Description: "Suspicious file upload contains known malware",
			Severity:    models.SeverityCritical,
			Status:      models.StatusResolved,
			Category:    models.CategoryMalware,
			Application: "File Upload Service",
			Timestamp:   now.Add(-time.Hour),
			IP:          "172.16.0.10",
			Details:     models.AlertDetails{RiskScore: 98, AffectedUsers: 1, BlockedRequests: 1},
		},
		{
			ID:          "5",
			Title:       "DDoS Attack Mitigated",
			Description: "Large volume of requests from multiple IPs blocked",
			Severity:    models.SeverityHigh,
			Status:      models.StatusResolved,
			Category:    models.CategoryDDoS,
			Application: "Web Frontend",
			Timestamp:   now.Add(-2 * time.Hour),
			Details:     models.AlertDetails{RiskScore: 90, BlockedRequests: 2500},
		},
	}
}

// Activities returns the live activity feed entries.
func Activities(now time.Time) []*models.Activity {
	return []*models.Activity{
		{
			ID:          "1",
			Title:       "Suspicious Login Attempt",
			Description: "Multiple failed login attempts from IP 192.168.1.100",
			Timestamp:   now.Add(-2 * time.Minute),
			Severity:    models.SeverityHigh,
			Type:        models.ActivityThreat,
			Application: "E-commerce Portal",
		},
		{
			ID:          "2",
			Title:       "Unusual API Usage Pattern",
			Description: "API calls exceeded normal threshold by 300%",
			Timestamp:   now.Add(-15 * time.Minute),
			Severity:    models.SeverityMedium,
			Type:        models.ActivityAnomaly,
			Application: "Mobile App Backend",
		},
		{
			ID:          "3",
			Title:       "System Health Check",
			Description: "All monitoring services operational",
			Timestamp:   now.Add(-30 * time.Minute),
			Severity:    models.SeverityLow,
			Type:        models.ActivitySystem,
		},
		{
			ID:          "4",
			Title:       "Failed Authentication Spike",
			Description: "15 failed authentication attempts in last 5 minutes",
			Timestamp:   now.Add(-45 * time.Minute),
			Severity:    models.SeverityMedium,
			Type:        models.ActivityThreat,
			Application: "Admin Dashboard",
		},
		{
			ID:          "5",
			Title:       "New User Registration",
			Description: "User john.doe@example.com registered successfully",
			Timestamp:   now.Add(-time.Hour),
			Severity:    models.SeverityLow,
			Type:        models.ActivityUser,
			Application: "User Portal",
		},
	}
}
