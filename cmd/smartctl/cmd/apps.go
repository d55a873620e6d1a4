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
	appStatus string
	appSearch string
)

// appsCmd represents the apps command group
var appsCmd = &cobra.Command{
	Use:     "apps",
	Aliases: []string{"applications"},
	Short:   "Application commands",
}

var appsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered applications",
	Long: `List registered applications, optionally filtered by status and name.

Example:
  smartctl apps list --search admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apps, err := loadApplications(cmd.Context())
		if err != nil {
			return err
		}

		visible := triage.Apply(apps, triage.NewFilter("", appStatus, "", appSearch))

		out := cmd.OutOrStdout()
		if output == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(visible)
		}
		printApps(out, visible, time.Now())
		return nil
	},
}

func printApps(w io.Writer, apps []*models.Application, now time.Time) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications found.")
		return
	}

	p := newPainter(w)
	fmt.Fprintln(w, p.header(fmt.Sprintf("%-36s  %-22s  %-8s  %-8s  %-7s  %-9s  %s",
		"ID", "NAME", "TYPE", "STATUS", "THREATS", "THRESHOLD", "LAST SCAN")))
	fmt.Fprintln(w, p.dim(strings.Repeat("-", 110)))

	for _, a := range apps {
		fmt.Fprintf(w, "%-36s  %-22s  %-8s  %s  %-7d  %-9d  %s\n",
			a.ID,
			truncate(a.Name, 22),
			a.Type,
			p.appStatus(a.Status, 8),
			a.Threats,
			a.Detection.ThreatThreshold,
			timeago.Format(a.LastScan, now),
		)
	}
	fmt.Fprintf(w, "\nTotal: %d application(s)\n", len(apps))
}

func init() {
	appsListCmd.Flags().StringVar(&appStatus, "status", "all", "status (all, active, warning, inactive)")
	appsListCmd.Flags().StringVarP(&appSearch, "search", "s", "", "search application name")

	appsCmd.AddCommand(appsListCmd)
	rootCmd.AddCommand(appsCmd)
}
