package triage

import "github.com/good-yellow-bee/smartdetect/internal/models"

// Summary holds the counts shown on the alert summary cards. It is computed
// over the whole alert set, not the filtered view.
type Summary struct {
	Total         int `json:"total"`
	New           int `json:"new"`
	Investigating int `json:"investigating"`
	Resolved      int `json:"resolved"`
	FalsePositive int `json:"false_positive"`
	Critical      int `json:"critical"`
}

// Summarize counts alerts per status plus critical severity.
func Summarize(alerts []*models.Alert) Summary {
	s := Summary{Total: len(alerts)}
	for _, a := range alerts {
		switch a.Status {
		case models.StatusNew:
			s.New++
		case models.StatusInvestigating:
			s.Investigating++
		case models.StatusResolved:
			s.Resolved++
		case models.StatusFalsePositive:
			s.FalsePositive++
		}
		if a.Severity == models.SeverityCritical {
			s.Critical++
		}
	}
	return s
}
