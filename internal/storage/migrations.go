package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      string
}

// migrations holds all database migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			-- Security alerts, kept in fixture order
			CREATE TABLE IF NOT EXISTS alerts (
				id TEXT PRIMARY KEY,
				position INTEGER NOT NULL,
				title TEXT NOT NULL,
				description TEXT,
				severity TEXT NOT NULL,
				status TEXT NOT NULL,
				category TEXT NOT NULL,
				application TEXT,
				timestamp_ns INTEGER NOT NULL,
				ip TEXT,
				user_agent TEXT,
				risk_score INTEGER NOT NULL DEFAULT 0,
				affected_users INTEGER NOT NULL DEFAULT 0,
				blocked_requests INTEGER NOT NULL DEFAULT 0
			);

			-- Registered applications
			CREATE TABLE IF NOT EXISTS applications (
				id TEXT PRIMARY KEY,
				position INTEGER NOT NULL,
				name TEXT NOT NULL,
				status TEXT NOT NULL,
				type TEXT NOT NULL,
				threats INTEGER NOT NULL DEFAULT 0,
				last_scan_ns INTEGER NOT NULL DEFAULT 0,
				threat_threshold INTEGER NOT NULL DEFAULT 75,
				auto_block INTEGER NOT NULL DEFAULT 1,
				real_time_monitoring INTEGER NOT NULL DEFAULT 1,
				created_at_ns INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX IF NOT EXISTS idx_alerts_position ON alerts(position);
			CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON alerts(timestamp_ns);
			CREATE INDEX IF NOT EXISTS idx_applications_position ON applications(position);
		`,
	},
	{
		Version: 2,
		Name:    "settings_and_profile",
		Up: `
			-- Single-row settings document
			CREATE TABLE IF NOT EXISTS settings (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				data_json TEXT NOT NULL,
				updated_at_ns INTEGER NOT NULL
			);

			-- Single-row user profile
			CREATE TABLE IF NOT EXISTS profile (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				email TEXT NOT NULL,
				phone TEXT,
				role TEXT,
				org_name TEXT,
				org_size TEXT,
				org_address TEXT,
				two_factor_enabled INTEGER NOT NULL DEFAULT 0,
				password_hash TEXT,
				updated_at_ns INTEGER NOT NULL
			);
		`,
	},
	{
		Version: 3,
		Name:    "support_requests",
		Up: `
			CREATE TABLE IF NOT EXISTS support_requests (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL,
				subject TEXT NOT NULL,
				message TEXT NOT NULL,
				created_at_ns INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_support_requests_created ON support_requests(created_at_ns);
		`,
	},
}

// runMigrations applies all pending migrations.
func runMigrations(db *sql.DB) error {
	// Create migrations table if not exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d (%s): %w", m.Version, m.Name, err)
		}

		_, err = tx.Exec(
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now().Unix(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// schemaVersion returns the highest applied migration.
func schemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("get current version: %w", err)
	}
	return v, nil
}
