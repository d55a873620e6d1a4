package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

const alertColumns = `id, title, description, severity, status, category, application,
	timestamp_ns, ip, user_agent, risk_score, affected_users, blocked_requests`

type sqliteAlertRepo struct {
	db *sql.DB
}

func (r *sqliteAlertRepo) ReplaceAll(ctx context.Context, alerts []*models.Alert) error {
	defer observe("alerts_replace")()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return failed("alerts_replace", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM alerts"); err != nil {
		return failed("alerts_replace", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alerts (position, `+alertColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return failed("alerts_replace", err)
	}
	defer stmt.Close()

	for i, a := range alerts {
		_, err := stmt.ExecContext(ctx, i,
			a.ID, a.Title, nullString(a.Description), a.Severity, a.Status, a.Category,
			nullString(a.Application), toNanos(a.Timestamp), nullString(a.IP), nullString(a.UserAgent),
			a.Details.RiskScore, a.Details.AffectedUsers, a.Details.BlockedRequests,
		)
		if err != nil {
			return failed("alerts_replace", fmt.Errorf("alert %s: %w", a.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return failed("alerts_replace", err)
	}
	return nil
}

func (r *sqliteAlertRepo) List(ctx context.Context) ([]*models.Alert, error) {
	defer observe("alerts_list")()

	rows, err := r.db.QueryContext(ctx, "SELECT "+alertColumns+" FROM alerts ORDER BY position")
	if err != nil {
		return nil, failed("alerts_list", err)
	}
	defer rows.Close()

	alerts := []*models.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *sqliteAlertRepo) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	defer observe("alerts_get")()

	row := r.db.QueryRowContext(ctx, "SELECT "+alertColumns+" FROM alerts WHERE id = ?", id)
	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *sqliteAlertRepo) UpdateStatus(ctx context.Context, id string, status models.AlertStatus) error {
	defer observe("alerts_update_status")()

	result, err := r.db.ExecContext(ctx, "UPDATE alerts SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return failed("alerts_update_status", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteAlertRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	defer observe("alerts_delete_before")()

	result, err := r.db.ExecContext(ctx, "DELETE FROM alerts WHERE timestamp_ns < ?", before.UnixNano())
	if err != nil {
		return 0, failed("alerts_delete_before", err)
	}
	return result.RowsAffected()
}

func (r *sqliteAlertRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM alerts").Scan(&n); err != nil {
		return 0, failed("alerts_count", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(s scanner) (*models.Alert, error) {
	a := &models.Alert{}
	var description, application, ip, userAgent sql.NullString
	var ts int64

	err := s.Scan(
		&a.ID, &a.Title, &description, &a.Severity, &a.Status, &a.Category, &application,
		&ts, &ip, &userAgent, &a.Details.RiskScore, &a.Details.AffectedUsers, &a.Details.BlockedRequests,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan alert: %w", err)
	}

	a.Description = description.String
	a.Application = application.String
	a.IP = ip.String
	a.UserAgent = userAgent.String
	a.Timestamp = fromNanos(ts)
	return a, nil
}
