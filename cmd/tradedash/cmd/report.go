package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/internal/api"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute performance metrics for the journal",
	Long: `Compute win rate, profit factor, streaks, drawdown and the grouped
breakdowns for every trade matching the filter flags.

Formats:
  text      - terminal summary (default)
  markdown  - Markdown tables
  org       - Org-mode document
  json      - the same body GET /api/report returns
  csv       - one group table (see --group) or the cumulative series

Examples:
  tradedash report
  tradedash report --account funded --provider FTMO
  tradedash report --from 2024-01-01 --to 2024-01-31 --format markdown
  tradedash report --format csv --group weekday --out weekday.csv`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportSpec   journal.FilterSpec
	reportFormat string
	reportGroup  string
	reportOut    string
	reportTitle  string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	addFilterFlags(reportCmd, &reportSpec)
	reportCmd.Flags().StringVarP(&reportFormat, "format", "F", "text", "output format: text, markdown, org, json, csv")
	reportCmd.Flags().StringVar(&reportGroup, "group", "setup",
		"csv table: setup, symbol, weekday, month, day, direction, account, provider, series")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write to file instead of stdout")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := reportSpec.Filter(location())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := loadTrades(store)
	if err != nil {
		return err
	}
	rep := analytics.Compute(trades, f.Match)
	log.Debug().Int("trades", rep.TotalTrades).Str("format", reportFormat).Msg("Report computed")

	opts := reportOptions(reportTitle)
	if reportFormat == "org" && reportOut != "" {
		if err := report.WriteOrg(reportOut, rep, opts); err != nil {
			return fmt.Errorf("write %s: %w", reportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written: %s\n", reportOut)
		return nil
	}

	w := cmd.OutOrStdout()
	if reportOut != "" {
		file, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", reportOut, err)
		}
		defer file.Close()
		w = file
	}

	if err := writeReport(w, rep, opts); err != nil {
		return err
	}
	if reportOut != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written: %s\n", reportOut)
	}
	return nil
}

func writeReport(w io.Writer, rep analytics.Report, opts report.Options) error {
	switch reportFormat {
	case "text":
		report.PrintReport(w, rep, opts)
		return nil
	case "markdown", "md":
		_, err := io.WriteString(w, report.RenderMarkdown(rep, opts))
		return err
	case "org":
		s, err := report.RenderOrg(rep, opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(api.ReportResponse{
			Report: rep,
			Equity: analytics.EquityCurve(rep.Cumulative, opts.StartingBalance),
			Goals:  report.GoalProgress(rep.ByMonth, opts.MonthlyTarget),
		})
	case "csv":
		return writeReportCSV(w, rep, opts.StartingBalance)
	}
	return fmt.Errorf("unknown format %q", reportFormat)
}

func writeReportCSV(w io.Writer, rep analytics.Report, start decimal.Decimal) error {
	var groups []analytics.GroupStats
	switch reportGroup {
	case "setup":
		groups = rep.BySetup
	case "symbol":
		groups = rep.BySymbol
	case "weekday":
		groups = rep.ByWeekday
	case "month":
		groups = rep.ByMonth
	case "day":
		groups = rep.ByDay
	case "direction":
		groups = rep.ByDirection
	case "account":
		groups = rep.ByAccountClass
	case "provider":
		groups = rep.ByProvider
	case "series":
		return report.WriteSeriesCSV(w, rep.Cumulative, start)
	default:
		return fmt.Errorf("unknown group %q", reportGroup)
	}
	return report.WriteGroupsCSV(w, groups)
}
