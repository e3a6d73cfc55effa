package report

import (
	"fmt"
	"io"

	"github.com/rustyeddy/tradedash/analytics"
)

const rule = "--------------------------------------------------"

// PrintReport writes a fixed-width text summary of r.
func PrintReport(w io.Writer, r analytics.Report, opts Options) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", opts.title())
	fmt.Fprintln(w, "==================================================")

	if r.Empty() {
		fmt.Fprintln(w, "No trades.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "Start:         %s\n", r.Start.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "End:           %s\n", r.End.Format("2006-01-02 15:04"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Trades:        %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", r.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Losses)
	fmt.Fprintf(w, "Breakeven:     %d\n", r.Breakevens)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.WinRate)
	fmt.Fprintf(w, "Profit Factor: %s\n", FormatRatio(r.ProfitFactor))
	fmt.Fprintf(w, "Risk/Reward:   %s\n", FormatRatio(r.RiskReward))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit & Loss")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Net P/L:       %s\n", FormatMoney(r.NetPnL, opts.Currency))
	fmt.Fprintf(w, "Gross Profit:  %s\n", FormatMoney(r.GrossProfit, opts.Currency))
	fmt.Fprintf(w, "Gross Loss:    %s\n", FormatMoney(r.GrossLoss, opts.Currency))
	fmt.Fprintf(w, "Avg Win:       %s\n", FormatMoney(r.AvgWin, opts.Currency))
	fmt.Fprintf(w, "Avg Loss:      %s\n", FormatMoney(r.AvgLoss, opts.Currency))
	fmt.Fprintf(w, "Avg Trade:     %s\n", FormatMoney(r.AvgTrade, opts.Currency))
	fmt.Fprintf(w, "Largest Win:   %s\n", FormatMoney(r.LargestWin, opts.Currency))
	fmt.Fprintf(w, "Largest Loss:  %s\n", FormatMoney(r.LargestLoss, opts.Currency))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", FormatMoney(r.MaxDrawdown, opts.Currency))

	if opts.StartingBalance.IsPositive() {
		fmt.Fprintf(w, "Start Balance: %s\n", FormatMoney(opts.StartingBalance, opts.Currency))
		fmt.Fprintf(w, "End Balance:   %s\n", FormatMoney(opts.StartingBalance.Add(r.NetPnL), opts.Currency))
		fmt.Fprintf(w, "Return:        %.2f%%\n", ReturnPct(r, opts.StartingBalance))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Streaks")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Max Wins:      %d\n", r.MaxConsecutiveWins)
	fmt.Fprintf(w, "Max Losses:    %d\n", r.MaxConsecutiveLosses)

	printGroups(w, "By Setup", r.BySetup)
	printGroups(w, "By Symbol", r.BySymbol)
	printGroups(w, "By Weekday", r.ByWeekday)
	printGroups(w, "By Direction", r.ByDirection)
	printGroups(w, "By Account", r.ByAccountClass)
	printGroups(w, "By Provider", r.ByProvider)

	if len(r.ByMonth) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By Month")
		fmt.Fprintln(w, rule)
		for _, g := range GoalProgress(r.ByMonth, opts.MonthlyTarget) {
			if g.Target.IsPositive() {
				fmt.Fprintf(w, "%-10s %12s  %6.1f%% of %s\n", g.Label, g.PnL.StringFixed(2), g.Percent, g.Target.StringFixed(0))
				continue
			}
			fmt.Fprintf(w, "%-10s %12s\n", g.Label, g.PnL.StringFixed(2))
		}
	}

	fmt.Fprintln(w)
}

func printGroups(w io.Writer, title string, groups []analytics.GroupStats) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-18s %6s %8s %12s\n", "", "Trades", "Win%", "P/L")
	for _, g := range groups {
		fmt.Fprintf(w, "%-18s %6d %7.1f%% %12s\n", g.Label, g.Count, g.WinRate, g.PnL.StringFixed(2))
	}
}
