package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

const applicationColumns = `id, name, status, type, threats, last_scan_ns,
	threat_threshold, auto_block, real_time_monitoring, created_at_ns`

type sqliteApplicationRepo struct {
	db *sql.DB
}

func (r *sqliteApplicationRepo) ReplaceAll(ctx context.Context, apps []*models.Application) error {
	defer observe("applications_replace")()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return failed("applications_replace", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applications"); err != nil {
		return failed("applications_replace", err)
	}
	for i, app := range apps {
		if err := insertApplication(ctx, tx, i, app); err != nil {
			return failed("applications_replace", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return failed("applications_replace", err)
	}
	return nil
}

func (r *sqliteApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	defer observe("applications_create")()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return failed("applications_create", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), -1) + 1 FROM applications").Scan(&next); err != nil {
		return failed("applications_create", err)
	}
	if err := insertApplication(ctx, tx, next, app); err != nil {
		return failed("applications_create", err)
	}
	if err := tx.Commit(); err != nil {
		return failed("applications_create", err)
	}
	return nil
}

func insertApplication(ctx context.Context, tx *sql.Tx, position int, app *models.Application) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO applications (position, `+applicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		position, app.ID, app.Name, app.Status, app.Type, app.Threats, toNanos(app.LastScan),
		app.Detection.ThreatThreshold, boolToInt(app.Detection.AutoBlock),
		boolToInt(app.Detection.RealTimeMonitoring), toNanos(app.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert application %s: %w", app.ID, err)
	}
	return nil
}

func (r *sqliteApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	defer observe("applications_get")()

	row := r.db.QueryRowContext(ctx, "SELECT "+applicationColumns+" FROM applications WHERE id = ?", id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return app, err
}

func (r *sqliteApplicationRepo) List(ctx context.Context) ([]*models.Application, error) {
	defer observe("applications_list")()

	rows, err := r.db.QueryContext(ctx, "SELECT "+applicationColumns+" FROM applications ORDER BY position")
	if err != nil {
		return nil, failed("applications_list", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *sqliteApplicationRepo) UpdateDetection(ctx context.Context, id string, cfg models.DetectionConfig) error {
	defer observe("applications_update_detection")()

	result, err := r.db.ExecContext(ctx, `
		UPDATE applications SET threat_threshold = ?, auto_block = ?, real_time_monitoring = ?
		WHERE id = ?
	`, cfg.ThreatThreshold, boolToInt(cfg.AutoBlock), boolToInt(cfg.RealTimeMonitoring), id)
	if err != nil {
		return failed("applications_update_detection", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteApplicationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&n); err != nil {
		return 0, failed("applications_count", err)
	}
	return n, nil
}

func scanApplication(s scanner) (*models.Application, error) {
	app := &models.Application{}
	var lastScan, createdAt int64
	var autoBlock, realTime int

	err := s.Scan(
		&app.ID, &app.Name, &app.Status, &app.Type, &app.Threats, &lastScan,
		&app.Detection.ThreatThreshold, &autoBlock, &realTime, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}

	app.LastScan = fromNanos(lastScan)
	app.CreatedAt = fromNanos(createdAt)
	app.Detection.AutoBlock = autoBlock != 0
	app.Detection.RealTimeMonitoring = realTime != 0
	return app, nil
}
