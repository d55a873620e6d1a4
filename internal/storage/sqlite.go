package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/metrics"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	path string
	db   *sql.DB

	alerts       *sqliteAlertRepo
	applications *sqliteApplicationRepo
	settings     *sqliteSettingsRepo
	profile      *sqliteProfileRepo
	support      *sqliteSupportRepo
}

// NewSQLiteStorage creates a new SQLite storage.
func NewSQLiteStorage(path string) *SQLiteStorage {
	return &SQLiteStorage{path: path}
}

// Open initializes the database connection.
func (s *SQLiteStorage) Open() error {
	ctx := context.Background()

	dsn := "file:" + s.path
	if s.path == MemoryPath {
		dsn = "file::memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite is single-writer; also keeps :memory: on one connection
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if s.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	s.db = db

	s.alerts = &sqliteAlertRepo{db: db}
	s.applications = &sqliteApplicationRepo{db: db}
	s.settings = &sqliteSettingsRepo{db: db}
	s.profile = &sqliteProfileRepo{db: db}
	s.support = &sqliteSupportRepo{db: db}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for health checks.
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}

// Migrate runs database migrations.
func (s *SQLiteStorage) Migrate() error {
	return runMigrations(s.db)
}

// EnsureSeeded loads fixtures into an empty database.
func (s *SQLiteStorage) EnsureSeeded(ctx context.Context, now time.Time) (string, error) {
	alerts, err := s.Alerts().Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count alerts: %w", err)
	}
	apps, err := s.Applications().Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count applications: %w", err)
	}
	if alerts > 0 || apps > 0 {
		return "", nil
	}

	if err := s.Alerts().ReplaceAll(ctx, fixtures.Alerts(now)); err != nil {
		return "", fmt.Errorf("seed alerts: %w", err)
	}
	if err := s.Applications().ReplaceAll(ctx, fixtures.Applications(now)); err != nil {
		return "", fmt.Errorf("seed applications: %w", err)
	}

	profile := fixtures.DefaultProfile()
	profile.UpdatedAt = now
	if err := s.Profile().Save(ctx, profile); err != nil {
		return "", fmt.Errorf("seed profile: %w", err)
	}

	password := generateRandomPassword(16)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.Profile().SetPasswordHash(ctx, string(hash)); err != nil {
		return "", fmt.Errorf("seed password: %w", err)
	}

	return password, nil
}

// Alerts returns the alert repository.
func (s *SQLiteStorage) Alerts() AlertRepository {
	return s.alerts
}

// Applications returns the application repository.
func (s *SQLiteStorage) Applications() ApplicationRepository {
	return s.applications
}

// Settings returns the settings repository.
func (s *SQLiteStorage) Settings() SettingsRepository {
	return s.settings
}

// Profile returns the profile repository.
func (s *SQLiteStorage) Profile() ProfileRepository {
	return s.profile
}

// Support returns the support request repository.
func (s *SQLiteStorage) Support() SupportRepository {
	return s.support
}

// generateRandomPassword generates a random password of the specified length.
func generateRandomPassword(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)[:length]
}

// observe records the latency of one storage operation.
func observe(op string) func() {
	start := time.Now()
	return func() {
		metrics.StorageQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// failed counts an error for op and returns it wrapped.
func failed(op string, err error) error {
	metrics.StorageErrors.WithLabelValues(op).Inc()
	return fmt.Errorf("%s: %w", strings.ReplaceAll(op, "_", " "), err)
}

// Helper functions

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
