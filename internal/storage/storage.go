// Package storage provides database storage interfaces and implementations.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open() error
	// Close closes the database connection.
	Close() error
	// Migrate runs database migrations.
	Migrate() error
	// EnsureSeeded loads the fixture datasets into an empty database. It
	// returns the generated initial profile password, or "" if the database
	// was already seeded.
	EnsureSeeded(ctx context.Context, now time.Time) (string, error)

	// Repository accessors
	Alerts() AlertRepository
	Applications() ApplicationRepository
	Settings() SettingsRepository
	Profile() ProfileRepository
	Support() SupportRepository
}

// AlertRepository stores security alerts in display order.
type AlertRepository interface {
	// ReplaceAll discards every alert and stores alerts in the given order.
	ReplaceAll(ctx context.Context, alerts []*models.Alert) error
	List(ctx context.Context) ([]*models.Alert, error)
	GetByID(ctx context.Context, id string) (*models.Alert, error)
	UpdateStatus(ctx context.Context, id string, status models.AlertStatus) error
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicationRepository stores registered applications.
type ApplicationRepository interface {
	ReplaceAll(ctx context.Context, apps []*models.Application) error
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	UpdateDetection(ctx context.Context, id string, cfg models.DetectionConfig) error
	Count(ctx context.Context) (int64, error)
}

// SettingsRepository stores the single settings document.
type SettingsRepository interface {
	// Get returns the stored settings, or the defaults when none were saved.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings) error
}

// ProfileRepository stores the single user profile.
type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	// Save updates everything except the password hash.
	Save(ctx context.Context, p *models.Profile) error
	SetPasswordHash(ctx context.Context, hash string) error
}

// SupportRepository stores help-centre support requests.
type SupportRepository interface {
	Create(ctx context.Context, req *models.SupportRequest) error
	List(ctx context.Context) ([]*models.SupportRequest, error)
}
