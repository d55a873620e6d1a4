package models

import "time"

// NotificationSettings controls how alerts reach the user.
type NotificationSettings struct {
	Email             bool   `json:"email"`
	Push              bool   `json:"push"`
	CriticalAlerts    bool   `json:"critical_alerts"`
	NotificationEmail string `json:"notification_email" validate:"omitempty,email"`
}

// AppearanceSettings holds display preferences.
type AppearanceSettings struct {
	Theme    string `json:"theme" validate:"oneof=light dark system"`
	Language string `json:"language" validate:"oneof=en es fr"`
}

// Settings are the account-wide preferences.
type Settings struct {
	Notifications     NotificationSettings `json:"notifications"`
	Appearance        AppearanceSettings   `json:"appearance"`
	DataRetentionDays int                  `json:"data_retention_days" validate:"oneof=30 90 180 365"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// DefaultSettings returns the preferences of a fresh installation.
func DefaultSettings() *Settings {
	return &Settings{
		Notifications: NotificationSettings{
			Email:          true,
			Push:           true,
			CriticalAlerts: true,
		},
		Appearance: AppearanceSettings{
			Theme:    "system",
			Language: "en",
		},
		DataRetentionDays: 90,
	}
}

// Retention returns the data retention period as a duration.
func (s *Settings) Retention() time.Duration {
	return time.Duration(s.DataRetentionDays) * 24 * time.Hour
}

// Profile is the signed-in user's personal and organisation details.
type Profile struct {
	FirstName        string    `json:"first_name" validate:"required,max=100"`
	LastName         string    `json:"last_name" validate:"required,max=100"`
	Email            string    `json:"email" validate:"required,email"`
	Phone            string    `json:"phone" validate:"max=40"`
	Role             string    `json:"role"`
	OrgName          string    `json:"org_name" validate:"max=200"`
	OrgSize          string    `json:"org_size" validate:"max=100"`
	OrgAddress       string    `json:"org_address" validate:"max=300"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	PasswordHash     string    `json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
}
