package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

func TestCompileExpr(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"severity equality", `severity == "critical"`, false},
		{"numeric", `risk_score >= 90 && blocked_requests > 0`, false},
		{"contains", `application contains "Portal"`, false},
		{"unknown field", `owner == "bob"`, true},
		{"not bool", `risk_score + 1`, true},
		{"syntax", `severity ==`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileExpr(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.Expression())
		})
	}
}

func TestApplyExpr(t *testing.T) {
	alerts := []*models.Alert{
		{ID: "1", Severity: models.SeverityCritical, Application: "E-commerce Portal", Details: models.AlertDetails{RiskScore: 95}},
		{ID: "2", Severity: models.SeverityHigh, Application: "Admin Dashboard", Details: models.AlertDetails{RiskScore: 85}},
		{ID: "3", Severity: models.SeverityCritical, Application: "File Upload Service", Details: models.AlertDetails{RiskScore: 98}},
	}

	f, err := CompileExpr(`severity_rank >= 4 && risk_score > 96`)
	require.NoError(t, err)
	got, err := ApplyExpr(alerts, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, IDs(got))

	f, err = CompileExpr(`application contains "Portal" || risk_score < 90`)
	require.NoError(t, err)
	got, err = ApplyExpr(alerts, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, IDs(got))
}
