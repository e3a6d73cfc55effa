package cmd

import (
	"fmt"
	"io"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/propfirm"
	"github.com/rustyeddy/tradedash/report"
	"github.com/spf13/cobra"
)

var propfirmCmd = &cobra.Command{
	Use:     "propfirm",
	Aliases: []string{"propfirms"},
	Short:   "Show prop-firm accounts and funded trading results",
	Long: `List the prop-firm accounts from the config with their status, net
return and progress toward the profit target, followed by the funded
trades in the journal rolled up per provider.`,
	Args: cobra.NoArgs,
	RunE: runPropfirm,
}

func init() {
	rootCmd.AddCommand(propfirmCmd)
}

func runPropfirm(cmd *cobra.Command, args []string) error {
	accounts, err := cfg.PropFirmAccounts()
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
	funded := journal.Filter{AccountClass: journal.Funded}

	rep := analytics.Compute(trades, funded.Match)

	w := cmd.OutOrStdout()
	printPropFirms(w, accounts, rep.ByProvider, cfg.Goals.PropTargetPct, cfg.Account.Currency)
	if len(rep.ByProvider) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Funded trades by provider:")
		for _, g := range rep.ByProvider {
			fmt.Fprintf(w, "  %-16s %4d trades  %6.1f%% win  %14s\n",
				g.Label, g.Count, g.WinRate, report.FormatMoney(g.PnL, cfg.Account.Currency))
		}
	}
	return nil
}

// printPropFirms lists accounts with the journal's funded trades for the
// same firm alongside.
func printPropFirms(w io.Writer, accounts []propfirm.Account, byProvider []analytics.GroupStats, targetPct float64, currency string) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No prop-firm accounts configured (see prop_firms in the config).")
		return
	}

	s := propfirm.Summarize(accounts)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "PROP FIRM ACCOUNTS")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Accounts:        %d (%d passed, %d active, %d failed)\n", s.Accounts, s.Passed, s.Active, s.Failed)
	fmt.Fprintf(w, "Pass Rate:       %.1f%%\n", s.PassRate)
	fmt.Fprintf(w, "Total Spent:     %s\n", report.FormatMoney(s.TotalSpent, currency))
	fmt.Fprintf(w, "Total Payouts:   %s\n", report.FormatMoney(s.TotalPayouts, currency))
	fmt.Fprintf(w, "Net Return:      %s (ROI %.1f%%)\n", report.FormatMoney(s.NetReturn, currency), s.ROI)
	fmt.Fprintf(w, "Active Capital:  %s\n", report.FormatMoney(s.ActiveCapital, currency))
	fmt.Fprintln(w, "----------------------------------------")

	for _, a := range propfirm.ByStatus(accounts) {
		g, _ := analytics.Find(byProvider, a.Firm)
		fmt.Fprintf(w, "%-7s %-14s %-18s size %12s  net %12s  target %5.1f%%  journal %3d trades %12s\n",
			a.Status, a.Firm, a.Program,
			report.FormatMoney(a.Size, currency),
			report.FormatMoney(a.Net(), currency),
			propfirm.Progress(a, targetPct),
			g.Count,
			report.FormatMoney(g.PnL, currency))
	}
}
