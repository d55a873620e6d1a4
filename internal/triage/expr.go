package triage

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

// ExprFilter evaluates an expr-lang boolean expression against alerts, e.g.
//
//	severity == "critical" && risk_score >= 90
//	application contains "Portal" || ip startsWith "192.168."
type ExprFilter struct {
	expression string
	program    *vm.Program
}

// CompileExpr type-checks expression against the alert environment.
func CompileExpr(expression string) (*ExprFilter, error) {
	program, err := expr.Compile(expression,
		expr.Env(alertEnv(&models.Alert{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}
	return &ExprFilter{expression: expression, program: program}, nil
}

// Match evaluates the expression for one alert.
func (f *ExprFilter) Match(a *models.Alert) (bool, error) {
	result, err := expr.Run(f.program, alertEnv(a))
	if err != nil {
		return false, fmt.Errorf("evaluate expression: %w", err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression did not return bool: got %T", result)
	}
	return matched, nil
}

// Expression returns the source expression.
func (f *ExprFilter) Expression() string {
	return f.expression
}

// ApplyExpr keeps the alerts matching f, in order.
func ApplyExpr(alerts []*models.Alert, f *ExprFilter) ([]*models.Alert, error) {
	out := make([]*models.Alert, 0, len(alerts))
	for _, a := range alerts {
		ok, err := f.Match(a)
		if err != nil {
			return nil, fmt.Errorf("alert %s: %w", a.ID, err)
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func alertEnv(a *models.Alert) map[string]any {
	return map[string]any{
		"id":               a.ID,
		"title":            a.Title,
		"description":      a.Description,
		"severity":         string(a.Severity),
		"severity_rank":    a.Severity.Rank(),
		"status":           string(a.Status),
		"category":         string(a.Category),
		"application":      a.Application,
		"ip":               a.IP,
		"user_agent":       a.UserAgent,
		"risk_score":       a.Details.RiskScore,
		"affected_users":   a.Details.AffectedUsers,
		"blocked_requests": a.Details.BlockedRequests,
	}
}
