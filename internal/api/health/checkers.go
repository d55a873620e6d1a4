package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteChecker checks SQLite database connectivity.
type SQLiteChecker struct {
	db *sql.DB
}

// NewSQLiteChecker creates a new SQLite health checker.
func NewSQLiteChecker(db *sql.DB) *SQLiteChecker {
	return &SQLiteChecker{db: db}
}

// Name returns the checker name.
func (c *SQLiteChecker) Name() string {
	return "sqlite"
}

// Check verifies the SQLite database is accessible.
func (c *SQLiteChecker) Check(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return c.db.PingContext(ctx)
}

// FeedChecker reports a refresh feed as unready until it has loaded once.
type FeedChecker struct {
	name      string
	updatedAt func() time.Time
}

// NewFeedChecker creates a checker over a feed's last update time.
func NewFeedChecker(name string, updatedAt func() time.Time) *FeedChecker {
	return &FeedChecker{name: name, updatedAt: updatedAt}
}

// Name returns the checker name.
func (c *FeedChecker) Name() string {
	return "feed:" + c.name
}

// Check fails until the first load has been applied.
func (c *FeedChecker) Check(ctx context.Context) error {
	if c.updatedAt == nil || c.updatedAt().IsZero() {
		return fmt.Errorf("%s feed not loaded yet", c.name)
	}
	return nil
}
