// Package charts assembles the dashboard chart datasets.
package charts

import (
	"errors"
	"fmt"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
)

// ErrUnknownKind is returned for a chart kind that is not supported.
var ErrUnknownKind = errors.New("unknown chart kind")

// DefaultHeight is the rendered height in pixels when none is given.
const DefaultHeight = 300

// Kind is a chart type.
type Kind string

const (
	KindLine Kind = "line"
	KindArea Kind = "area"
	KindPie  Kind = "pie"
	KindBar  Kind = "bar"
)

// Kinds lists the supported chart kinds.
var Kinds = []Kind{KindLine, KindArea, KindPie, KindBar}

// Chart is a dataset together with how it should be drawn.
type Chart struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	Height int      `json:"height"`
	Series []string `json:"series,omitempty"`
	Data   any      `json:"data"`
}

// ParseKind validates a chart kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Build returns the chart for kind. A height of 0 or less uses DefaultHeight.
func Build(kind Kind, height int) (*Chart, error) {
	if height <= 0 {
		height = DefaultHeight
	}

	c := &Chart{Kind: kind, Height: height}
	switch kind {
	case KindLine:
		c.Title = "Security Events Timeline"
		c.Series = []string{"threats", "anomalies"}
		c.Data = fixtures.SecurityTimeSeries()
	case KindArea:
		c.Title = "Traffic Overview"
		c.Series = []string{"normal", "threats"}
		c.Data = fixtures.SecurityTimeSeries()
	case KindPie:
		c.Title = "Threat Distribution"
		c.Data = fixtures.ThreatDistribution()
	case KindBar:
		c.Title = "Application Health"
		c.Series = []string{"health", "threats"}
		c.Data = fixtures.ApplicationHealth()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return c, nil
}
