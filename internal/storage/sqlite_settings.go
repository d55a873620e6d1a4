package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

type sqliteSettingsRepo struct {
	db *sql.DB
}

func (r *sqliteSettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	defer observe("settings_get")()

	var data string
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, "SELECT data_json, updated_at_ns FROM settings WHERE id = 1").Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, failed("settings_get", err)
	}

	s := models.DefaultSettings()
	if err := json.Unmarshal([]byte(data), s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	s.UpdatedAt = fromNanos(updatedAt)
	return s, nil
}

func (r *sqliteSettingsRepo) Save(ctx context.Context, s *models.Settings) error {
	defer observe("settings_save")()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (id, data_json, updated_at_ns) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data_json = excluded.data_json, updated_at_ns = excluded.updated_at_ns
	`, string(data), toNanos(s.UpdatedAt))
	if err != nil {
		return failed("settings_save", err)
	}
	return nil
}

type sqliteProfileRepo struct {
	db *sql.DB
}

func (r *sqliteProfileRepo) Get(ctx context.Context) (*models.Profile, error) {
	defer observe("profile_get")()

	p := &models.Profile{}
	var phone, role, orgName, orgSize, orgAddress, hash sql.NullString
	var twoFactor int
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, `
		SELECT first_name, last_name, email, phone, role, org_name, org_size, org_address,
			two_factor_enabled, password_hash, updated_at_ns
		FROM profile WHERE id = 1
	`).Scan(
		&p.FirstName, &p.LastName, &p.Email, &phone, &role, &orgName, &orgSize, &orgAddress,
		&twoFactor, &hash, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, failed("profile_get", err)
	}

	p.Phone = phone.String
	p.Role = role.String
	p.OrgName = orgName.String
	p.OrgSize = orgSize.String
	p.OrgAddress = orgAddress.String
	p.TwoFactorEnabled = twoFactor != 0
	p.PasswordHash = hash.String
	p.UpdatedAt = fromNanos(updatedAt)
	return p, nil
}

func (r *sqliteProfileRepo) Save(ctx context.Context, p *models.Profile) error {
	defer observe("profile_save")()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (id, first_name, last_name, email, phone, role, org_name, org_size,
			org_address, two_factor_enabled, updated_at_ns)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			role = excluded.role,
			org_name = excluded.org_name,
			org_size = excluded.org_size,
			org_address = excluded.org_address,
			two_factor_enabled = excluded.two_factor_enabled,
			updated_at_ns = excluded.updated_at_ns
	`,
		p.FirstName, p.LastName, p.Email, nullString(p.Phone), nullString(p.Role),
		nullString(p.OrgName), nullString(p.OrgSize), nullString(p.OrgAddress),
		boolToInt(p.TwoFactorEnabled), toNanos(p.UpdatedAt),
	)
	if err != nil {
		return failed("profile_save", err)
	}
	return nil
}

func (r *sqliteProfileRepo) SetPasswordHash(ctx context.Context, hash string) error {
	defer observe("profile_set_password")()

	result, err := r.db.ExecContext(ctx, "UPDATE profile SET password_hash = ? WHERE id = 1", hash)
	if err != nil {
		return failed("profile_set_password", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
