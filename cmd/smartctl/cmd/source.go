package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

// openDatabase opens an existing SmartDetect database.
func openDatabase(path string) (*storage.SQLiteStorage, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("database file not found: %s", path)
	}

	store := storage.NewSQLiteStorage(path)
	if err := store.Open(); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return store, nil
}

// loadAlerts reads alerts from --db, or generates the sample set.
func loadAlerts(ctx context.Context) ([]*models.Alert, error) {
	if dbPath == "" {
		return fixtures.Alerts(time.Now()), nil
	}
	store, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	alerts, err := store.Alerts().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// loadApplications reads applications from --db, or generates the sample set.
func loadApplications(ctx context.Context) ([]*models.Application, error) {
	if dbPath == "" {
		return fixtures.Applications(time.Now()), nil
	}
	store, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	apps, err := store.Applications().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}
