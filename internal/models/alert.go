// Package models defines domain models for SmartDetect.
package models

import "time"

// Severity represents alert severity level.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity from least to most urgent.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Rank returns the display emphasis of a severity; unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Less reports whether s is less urgent than other.
func (s Severity) Less(other Severity) bool {
	return s.Rank() < other.Rank()
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// AlertStatus is the triage state of an alert. Any status may move to any other.
type AlertStatus string

const (
	StatusNew           AlertStatus = "new"
	StatusInvestigating AlertStatus = "investigating"
	StatusResolved      AlertStatus = "resolved"
	StatusFalsePositive AlertStatus = "false_positive"
)

// AlertStatuses lists every alert status.
var AlertStatuses = []AlertStatus{StatusNew, StatusInvestigating, StatusResolved, StatusFalsePositive}

// Valid reports whether s is a known status.
func (s AlertStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInvestigating, StatusResolved, StatusFalsePositive:
		return true
	}
	return false
}

// Category classifies the attack behind an alert.
type Category string

const (
	CategoryAuthentication Category = "authentication"
	CategoryInjection      Category = "injection"
	CategoryDDoS           Category = "ddos"
	CategoryMalware        Category = "malware"
	CategoryAnomaly        Category = "anomaly"
)

// Categories lists every alert category.
var Categories = []Category{CategoryAuthentication, CategoryInjection, CategoryDDoS, CategoryMalware, CategoryAnomaly}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AlertDetails holds the risk figures shown in the alert detail overlay.
type AlertDetails struct {
	RiskScore       int `json:"risk_score"`
	AffectedUsers   int `json:"affected_users"`
	BlockedRequests int `json:"blocked_requests"`
}

// Alert is a security alert raised against a monitored application.
type Alert struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Severity    Severity     `json:"severity"`
	Status      AlertStatus  `json:"status"`
	Category    Category     `json:"category"`
	Application string       `json:"application,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	IP          string       `json:"ip,omitempty"`
	UserAgent   string       `json:"user_agent,omitempty"`
	Details     AlertDetails `json:"details"`
}

// RecordID implements triage.Record.
func (a *Alert) RecordID() string { return a.ID }

// FilterValues implements triage.Record.
func (a *Alert) FilterValues() map[string]string {
	return map[string]string{
		"severity": string(a.Severity),
		"status":   string(a.Status),
		"category": string(a.Category),
	}
}

// SearchFields implements triage.Record. Only title and application are searchable.
func (a *Alert) SearchFields() []string {
	return []string{a.Title, a.Application}
}
