package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	severityStyles = map[models.Severity]lipgloss.Style{
		models.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		models.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		models.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}

	appStatusStyles = map[models.AppStatus]lipgloss.Style{
		models.AppActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		models.AppWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.AppInactive: dimStyle,
	}
)

// painter styles table cells, or passes them through when w is not a terminal.
type painter struct {
	color bool
}

func newPainter(w io.Writer) painter {
	f, ok := w.(*os.File)
	return painter{color: ok && term.IsTerminal(int(f.Fd()))}
}

func (p painter) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// severity pads before styling so escape codes do not break column widths.
func (p painter) severity(s models.Severity, width int) string {
	return p.render(severityStyles[s], fmt.Sprintf("%-*s", width, s))
}

func (p painter) appStatus(s models.AppStatus, width int) string {
	return p.render(appStatusStyles[s], fmt.Sprintf("%-*s", width, s))
}

func (p painter) header(text string) string {
	return p.render(headerStyle, text)
}

func (p painter) dim(text string) string {
	return p.render(dimStyle, text)
}
