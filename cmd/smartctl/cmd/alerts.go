package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/timeago"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

var (
	alertSeverity string
	alertStatus   string
	alertCategory string
	alertSearch   string
	alertExpr     string
)

// alertsCmd represents the alerts command group
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Alert commands",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts",
	Long: `List alerts matching the filter flags, newest first.

Filters combine with AND. --search matches the title or application,
case-insensitively. --expr takes a boolean expression over the fields
id, title, severity, severity_rank, status, category, application, ip,
risk_score, affected_users and blocked_requests.

Example:
  smartctl alerts list --severity high --search admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alerts, err := loadAlerts(cmd.Context())
		if err != nil {
			return err
		}

		filter := triage.NewFilter(alertSeverity, alertStatus, alertCategory, alertSearch)
		visible := triage.Apply(alerts, filter)
		if alertExpr != "" {
			ef, err := triage.CompileExpr(alertExpr)
			if err != nil {
				return err
			}
			if visible, err = triage.ApplyExpr(visible, ef); err != nil {
				return err
			}
		}
		printVerbose(cmd.ErrOrStderr(), "%d of %d alerts match", len(visible), len(alerts))

		out := cmd.OutOrStdout()
		if output == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(visible)
		}
		printAlerts(out, visible, time.Now())
		return nil
	},
}

func printAlerts(w io.Writer, alerts []*models.Alert, now time.Time) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, "No alerts found.")
		return
	}

	p := newPainter(w)
	fmt.Fprintln(w, p.header(fmt.Sprintf("%-4s  %-10s  %-15s  %-32s  %-22s  %s",
		"ID", "SEVERITY", "STATUS", "TITLE", "APPLICATION", "SEEN")))
	fmt.Fprintln(w, p.dim(strings.Repeat("-", 100)))

	for _, a := range alerts {
		fmt.Fprintf(w, "%-4s  %s  %-15s  %-32s  %-22s  %s\n",
			a.ID,
			p.severity(a.Severity, 10),
			a.Status,
			truncate(a.Title, 32),
			truncate(a.Application, 22),
			timeago.Format(a.Timestamp, now),
		)
	}
	fmt.Fprintf(w, "\nTotal: %d alert(s)\n", len(alerts))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	alertsListCmd.Flags().StringVar(&alertSeverity, "severity", "all", "severity (all, low, medium, high, critical)")
	alertsListCmd.Flags().StringVar(&alertStatus, "status", "all", "status (all, new, investigating, resolved, false_positive)")
	alertsListCmd.Flags().StringVar(&alertCategory, "category", "all", "category (all, authentication, injection, ddos, malware, anomaly)")
	alertsListCmd.Flags().StringVarP(&alertSearch, "search", "s", "", "search title and application")
	alertsListCmd.Flags().StringVar(&alertExpr, "expr", "", "filter expression")

	alertsCmd.AddCommand(alertsListCmd)
	rootCmd.AddCommand(alertsCmd)
}
