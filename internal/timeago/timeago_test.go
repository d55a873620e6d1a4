package timeago

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_Boundaries(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "Just now"},
		{"59 seconds", 59 * time.Second, "Just now"},
		{"one minute", time.Minute, "1m ago"},
		{"59 minutes", 59 * time.Minute, "59m ago"},
		{"59m59s floors", 59*time.Minute + 59*time.Second, "59m ago"},
		{"60 minutes", 60 * time.Minute, "1h ago"},
		{"119 minutes", 119 * time.Minute, "1h ago"},
		{"1439 minutes", 1439 * time.Minute, "23h ago"},
		{"1440 minutes", 1440 * time.Minute, "1d ago"},
		{"ten days", 10 * 24 * time.Hour, "10d ago"},
		{"future", -5 * time.Minute, "Just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(now.Add(-tt.elapsed), now))
		})
	}
}

func TestSince(t *testing.T) {
	assert.Equal(t, "5m ago", Since(time.Now().Add(-5*time.Minute-10*time.Second)))
}
