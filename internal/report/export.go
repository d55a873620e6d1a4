package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

// ErrUnsupportedFormat is returned for export formats that are recognised
// but not produced.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format defines the output format for exports.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// AlertHeader is the column row of the CSV alert section.
var AlertHeader = []string{"id", "timestamp", "severity", "status", "category", "title", "application", "ip", "risk_score"}

// ParseFormat parses a format name; empty means JSON. PDF parses but
// returns ErrUnsupportedFormat.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	default:
		return "", fmt.Errorf("unknown export format %q (expected csv or json)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Filename returns the download name for a report generated at t.
func (f Format) Filename(t time.Time) string {
	return "security-report-" + t.UTC().Format("20060102-150405") + "." + string(f)
}

// Exporter writes reports in one format.
type Exporter struct {
	format Format
	writer io.Writer
}

// NewExporter creates an exporter for the given format.
func NewExporter(format Format, w io.Writer) *Exporter {
	return &Exporter{
		format: format,
		writer: w,
	}
}

// Export writes rep in the configured format.
func (e *Exporter) Export(rep *models.Report) error {
	switch e.format {
	case FormatCSV:
		return e.exportCSV(rep)
	case FormatJSON:
		return e.exportJSON(rep)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.format)
	}
}

func (e *Exporter) exportJSON(rep *models.Report) error {
	encoder := json.NewEncoder(e.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

func (e *Exporter) exportCSV(rep *models.Report) error {
	w := csv.NewWriter(e.writer)

	w.Write([]string{"# Summary"})
	w.Write([]string{"type", string(rep.Type)})
	w.Write([]string{"generated_at", rep.GeneratedAt.Format(time.RFC3339)})
	w.Write([]string{"total_threats", strconv.Itoa(rep.TotalThreats)})
	w.Write([]string{"resolved", strconv.Itoa(rep.Resolved)})
	w.Write([]string{"active", strconv.Itoa(rep.Active)})
	w.Write([]string{"resolution_rate", strconv.FormatFloat(rep.ResolutionRate, 'f', 1, 64)})
	w.Write([]string{})

	w.Write([]string{"# Categories"})
	w.Write([]string{"category", "count"})
	for _, c := range rep.ByCategory {
		w.Write([]string{c.Name, strconv.Itoa(c.Value)})
	}
	w.Write([]string{})

	w.Write([]string{"# Alerts"})
	w.Write(AlertHeader)
	for _, a := range rep.Alerts {
		w.Write([]string{
			a.ID,
			a.Timestamp.Format(time.RFC3339),
			string(a.Severity),
			string(a.Status),
			string(a.Category),
			a.Title,
			a.Application,
			a.IP,
			strconv.Itoa(a.Details.RiskScore),
		})
	}

	w.Flush()
	return w.Error()
}
