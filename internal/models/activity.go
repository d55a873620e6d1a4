package models

import "time"

// ActivityType is the source of an activity feed entry.
type ActivityType string

const (
	ActivityThreat  ActivityType = "threat"
	ActivityAnomaly ActivityType = "anomaly"
	ActivitySystem  ActivityType = "system"
	ActivityUser    ActivityType = "user"
)

// Activity is an entry of the live activity feed.
type Activity struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	Severity    Severity     `json:"severity"`
	Type        ActivityType `json:"type"`
	Application string       `json:"application,omitempty"`
}

func (a *Activity) RecordID() string { return a.ID }

func (a *Activity) FilterValues() map[string]string {
	return map[string]string{
		"severity": string(a.Severity),
		"category": string(a.Type),
	}
}

func (a *Activity) SearchFields() []string {
	return []string{a.Title, a.Application}
}
