package models

// ChangeType is the direction of a metric delta.
type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
	ChangeNeutral  ChangeType = "neutral"
)

// Change is the delta shown under a metric value.
type Change struct {
	Value string     `json:"value"`
	Type  ChangeType `json:"type"`
}

// Metric is a label/value/delta tuple. A loading metric carries only its title.
type Metric struct {
	Title   string  `json:"title"`
	Value   string  `json:"value,omitempty"`
	Change  *Change `json:"change,omitempty"`
	Loading bool    `json:"loading,omitempty"`
}

// LoadingMetric returns the placeholder variant of a metric.
func LoadingMetric(title string) Metric {
	return Metric{Title: title, Loading: true}
}

// NavItem is an entry of the navigation shell.
type NavItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// Navigation is the fixed route table of the dashboard shell.
var Navigation = []NavItem{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Monitoring", Path: "/monitoring"},
	{Label: "Alerts", Path: "/alerts"},
	{Label: "Applications", Path: "/applications"},
	{Label: "Reports", Path: "/reports"},
	{Label: "Settings", Path: "/settings"},
	{Label: "Profile", Path: "/profile"},
	{Label: "Help", Path: "/help"},
}

// NavigationFor returns a copy of the route table with current marked active.
// Nested paths such as /applications/3 activate their parent entry.
func NavigationFor(current string) []NavItem {
	items := make([]NavItem, len(Navigation))
	copy(items, Navigation)
	for i := range items {
		p := items[i].Path
		items[i].Active = current == p || (len(current) > len(p) && current[:len(p)] == p && current[len(p)] == '/')
	}
	return items
}
