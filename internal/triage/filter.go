// Package triage implements the filtering and selection model behind the
// alert, activity and application lists.
package triage

import "strings"

// All is the filter value that matches every record.
const All = "all"

// Filter keys understood by Filter.Matches.
const (
	KeySeverity = "severity"
	KeyStatus   = "status"
	KeyCategory = "category"
)

// Record is anything that can be listed, filtered and selected.
type Record interface {
	// RecordID returns the id used for selection. It must be unique within a list.
	RecordID() string
	// FilterValues returns the enum values keyed by KeySeverity, KeyStatus and KeyCategory.
	FilterValues() map[string]string
	// SearchFields returns the free-text fields matched by the search string.
	SearchFields() []string
}

// Filter is the state of a list's filter controls.
type Filter struct {
	Severity string `json:"severity"`
	Status   string `json:"status"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// NewFilter builds a normalized filter; empty enum values become All.
func NewFilter(severity, status, category, search string) Filter {
	return Filter{
		Severity: severity,
		Status:   status,
		Category: category,
		Search:   search,
	}.Normalize()
}

// Normalize returns f with empty enum values set to All and the search lower-cased.
func (f Filter) Normalize() Filter {
	if f.Severity == "" {
		f.Severity = All
	}
	if f.Status == "" {
		f.Status = All
	}
	if f.Category == "" {
		f.Category = All
	}
	f.Search = strings.ToLower(f.Search)
	return f
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	n := f.Normalize()
	return n.Severity == All && n.Status == All && n.Category == All && n.Search == ""
}

// Matches reports whether r passes every enum filter and the search string.
// Unknown enum values simply never match.
func (f Filter) Matches(r Record) bool {
	values := r.FilterValues()
	if !matchEnum(f.Severity, values[KeySeverity]) ||
		!matchEnum(f.Status, values[KeyStatus]) ||
		!matchEnum(f.Category, values[KeyCategory]) {
		return false
	}

	search := strings.ToLower(f.Search)
	if search == "" {
		return true
	}
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchEnum(want, got string) bool {
	return want == "" || want == All || want == got
}

// Apply returns the records matching f, in input order.
func Apply[R Record](records []R, f Filter) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// IDs returns the record ids in order.
func IDs[R Record](records []R) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return ids
}
