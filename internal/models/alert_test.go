package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityOrdering(t *testing.T) {
	for i := 1; i < len(Severities); i++ {
		assert.True(t, Severities[i-1].Less(Severities[i]), "%s should rank below %s", Severities[i-1], Severities[i])
	}
	assert.False(t, SeverityCritical.Less(SeverityHigh))
	assert.False(t, Severity("urgent").Valid())
	assert.Equal(t, 0, Severity("urgent").Rank())
}

func TestAlertStatusValid(t *testing.T) {
	for _, s := range AlertStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, AlertStatus("closed").Valid())
}

func TestMonitoredAppHealthBand(t *testing.T) {
	tests := []struct {
		health int
		want   string
	}{
		{99, "good"},
		{95, "good"},
		{94, "warn"},
		{80, "warn"},
		{79, "bad"},
	}
	for _, tt := range tests {
		m := &MonitoredApp{Health: tt.health}
		assert.Equal(t, tt.want, m.HealthBand(), "health %d", tt.health)
	}
	assert.True(t, (&MonitoredApp{Threats: 11}).ElevatedThreats())
	assert.False(t, (&MonitoredApp{Threats: 10}).ElevatedThreats())
}

func TestNavigationFor(t *testing.T) {
	items := NavigationFor("/applications/3")
	var active []string
	for _, it := range items {
		if it.Active {
			active = append(active, it.Path)
		}
	}
	assert.Equal(t, []string{"/applications"}, active)

	// The shared table is never mutated.
	for _, it := range Navigation {
		assert.False(t, it.Active)
	}
}
