package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

type sqliteSupportRepo struct {
	db *sql.DB
}

func (r *sqliteSupportRepo) Create(ctx context.Context, req *models.SupportRequest) error {
	defer observe("support_create")()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO support_requests (id, email, subject, message, created_at_ns)
		VALUES (?, ?, ?, ?, ?)
	`, req.ID, req.Email, req.Subject, req.Message, toNanos(req.CreatedAt))
	if err != nil {
		return failed("support_create", err)
	}
	return nil
}

func (r *sqliteSupportRepo) List(ctx context.Context) ([]*models.SupportRequest, error) {
	defer observe("support_list")()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, subject, message, created_at_ns
		FROM support_requests ORDER BY created_at_ns DESC
	`)
	if err != nil {
		return nil, failed("support_list", err)
	}
	defer rows.Close()

	reqs := []*models.SupportRequest{}
	for rows.Next() {
		req := &models.SupportRequest{}
		var createdAt int64
		if err := rows.Scan(&req.ID, &req.Email, &req.Subject, &req.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan support request: %w", err)
		}
		req.CreatedAt = fromNanos(createdAt)
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
