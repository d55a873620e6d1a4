package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

func TestApplications_SearchAdmin(t *testing.T) {
	apps := Applications(time.Now())
	got := triage.Apply(apps, triage.NewFilter("", triage.All, "", "admin"))
	require.Len(t, got, 1)
	assert.Equal(t, "Admin Dashboard", got[0].Name)
}

func TestFixtures_UniqueIDs(t *testing.T) {
	now := time.Now()
	assertUnique(t, triage.IDs(Alerts(now)))
	assertUnique(t, triage.IDs(Activities(now)))
	assertUnique(t, triage.IDs(Applications(now)))
}

func TestAlerts_RelativeToReference(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	alerts := Alerts(now)
	assert.Equal(t, now.Add(-5*time.Minute), alerts[0].Timestamp)
	for _, a := range alerts {
		assert.True(t, a.Severity.Valid())
		assert.True(t, a.Status.Valid())
		assert.True(t, a.Category.Valid())
	}
}

func assertUnique(t *testing.T, ids []string) {
	t.Helper()
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
