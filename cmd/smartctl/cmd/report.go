package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/report"
)

var (
	reportFormat string
	reportFrom   string
	reportTo     string
	reportType   string
	reportOut    string
)

// reportCmd represents the report command group
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report commands",
}

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an alert report",
	Long: `Export a report of the alerts raised in a date range.

Dates are YYYY-MM-DD or RFC3339; a date-only --to covers the whole day.

Example:
  smartctl report export --format csv --from 2026-03-01 --out march.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(reportFormat)
		if err != nil {
			return err
		}
		typ := models.ReportType(reportType)
		if !typ.Valid() {
			return fmt.Errorf("unknown report type %q", reportType)
		}
		rng, err := report.ParseRange(reportFrom, reportTo)
		if err != nil {
			return err
		}

		alerts, err := loadAlerts(cmd.Context())
		if err != nil {
			return err
		}
		rep := report.Build(alerts, typ, rng, time.Now())

		var w io.Writer = cmd.OutOrStdout()
		if reportOut != "" {
			f, err := os.Create(reportOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := report.NewExporter(format, w).Export(rep); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		if reportOut != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d alert(s) to %s\n", rep.TotalThreats, reportOut)
		}
		return nil
	},
}

func init() {
	reportExportCmd.Flags().StringVarP(&reportFormat, "format", "f", "csv", "export format (csv, json)")
	reportExportCmd.Flags().StringVar(&reportFrom, "from", "", "start date (YYYY-MM-DD or RFC3339)")
	reportExportCmd.Flags().StringVar(&reportTo, "to", "", "end date (YYYY-MM-DD or RFC3339)")
	reportExportCmd.Flags().StringVarP(&reportType, "type", "t", string(models.ReportSecurity), "report type (security, threat, compliance, custom)")
	reportExportCmd.Flags().StringVar(&reportOut, "out", "", "output file (default: stdout)")

	reportCmd.AddCommand(reportExportCmd)
	rootCmd.AddCommand(reportCmd)
}
