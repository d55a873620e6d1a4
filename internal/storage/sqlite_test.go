package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()

	store := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Open(), "open database")
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(), "migrate database")
	return store
}

func TestSQLiteStorage_Migrate(t *testing.T) {
	store := setupTestDB(t)

	v, err := schemaVersion(store.DB())
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, v)

	// Running again is a no-op.
	require.NoError(t, store.Migrate())
}

func TestSQLiteStorage_Memory(t *testing.T) {
	store := NewSQLiteStorage(MemoryPath)
	require.NoError(t, store.Open())
	defer store.Close()
	require.NoError(t, store.Migrate())

	_, err := store.EnsureSeeded(context.Background(), time.Now())
	require.NoError(t, err)
	n, err := store.Alerts().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(fixtures.Alerts(time.Now()))), n)
}

func TestSQLiteStorage_EnsureSeeded(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	password, err := store.EnsureSeeded(ctx, now)
	require.NoError(t, err)
	assert.Len(t, password, 16)

	profile, err := store.Profile().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John", profile.FirstName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)))

	// Second call leaves the data alone.
	password, err = store.EnsureSeeded(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, password)
}

func TestAlertRepo_ReplaceAllKeepsOrder(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	want := fixtures.Alerts(now)
	require.NoError(t, store.Alerts().ReplaceAll(ctx, want))

	got, err := store.Alerts().List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Details, got[i].Details)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}

	// Replacing discards previous rows.
	require.NoError(t, store.Alerts().ReplaceAll(ctx, want[:2]))
	n, err := store.Alerts().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAlertRepo_GetAndUpdateStatus(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, store.Alerts().ReplaceAll(ctx, fixtures.Alerts(time.Now())))

	a, err := store.Alerts().GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, a.Status)
	assert.Equal(t, "192.168.1.100", a.IP)

	require.NoError(t, store.Alerts().UpdateStatus(ctx, "1", models.StatusFalsePositive))
	a, err = store.Alerts().GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFalsePositive, a.Status)

	_, err = store.Alerts().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Alerts().UpdateStatus(ctx, "missing", models.StatusNew), ErrNotFound)
}

func TestAlertRepo_DeleteBefore(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Alerts().ReplaceAll(ctx, fixtures.Alerts(now)))

	// Fixtures span 5m to 2h old; cut at 45m removes the 1h and 2h alerts.
	deleted, err := store.Alerts().DeleteBefore(ctx, now.Add(-45*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := store.Alerts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 3)
}

func TestApplicationRepo(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Applications().ReplaceAll(ctx, fixtures.Applications(now)))

	app := &models.Application{
		ID:        uuid.New().String(),
		Name:      "Billing API",
		Status:    models.AppActive,
		Type:      models.AppTypeAPI,
		LastScan:  now,
		Detection: models.DefaultDetectionConfig(),
		CreatedAt: now,
	}
	require.NoError(t, store.Applications().Create(ctx, app))

	apps, err := store.Applications().List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 7)
	assert.Equal(t, "Production API", apps[0].Name)
	assert.Equal(t, "Billing API", apps[6].Name)

	cfg := models.DetectionConfig{ThreatThreshold: 40, AutoBlock: false, RealTimeMonitoring: true}
	require.NoError(t, store.Applications().UpdateDetection(ctx, app.ID, cfg))
	got, err := store.Applications().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg, got.Detection)

	_, err = store.Applications().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Applications().UpdateDetection(ctx, "missing", cfg), ErrNotFound)
}

func TestSettingsRepo(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	s, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s)

	s.Appearance.Theme = "dark"
	s.DataRetentionDays = 30
	s.UpdatedAt = time.Now()
	require.NoError(t, store.Settings().Save(ctx, s))

	got, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Appearance.Theme)
	assert.Equal(t, 30, got.DataRetentionDays)
	assert.True(t, s.UpdatedAt.Equal(got.UpdatedAt))
}

func TestProfileRepo(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	_, err := store.Profile().Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Profile().SetPasswordHash(ctx, "x"), ErrNotFound)

	p := fixtures.DefaultProfile()
	require.NoError(t, store.Profile().Save(ctx, p))
	require.NoError(t, store.Profile().SetPasswordHash(ctx, "hash"))

	p.TwoFactorEnabled = true
	p.OrgName = "Initech"
	require.NoError(t, store.Profile().Save(ctx, p))

	got, err := store.Profile().Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.TwoFactorEnabled)
	assert.Equal(t, "Initech", got.OrgName)
	assert.Equal(t, "hash", got.PasswordHash, "save keeps the password hash")
}

func TestSupportRepo(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	older := &models.SupportRequest{ID: "a", Email: "a@example.com", Subject: "one", Message: "first", CreatedAt: now.Add(-time.Hour)}
	newer := &models.SupportRequest{ID: "b", Email: "b@example.com", Subject: "two", Message: "second", CreatedAt: now}
	require.NoError(t, store.Support().Create(ctx, older))
	require.NoError(t, store.Support().Create(ctx, newer))

	reqs, err := store.Support().List(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "b", reqs[0].ID)
	assert.Equal(t, "a", reqs[1].ID)
}
