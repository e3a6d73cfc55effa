package report

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradedash/analytics"
)

// RenderMarkdown renders r as a Markdown document.
func RenderMarkdown(r analytics.Report, opts Options) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", opts.title()))
	if r.Empty() {
		sb.WriteString("No trades.\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Period: %s to %s\n\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Trades | %d |\n", r.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Wins / Losses / BE | %d / %d / %d |\n", r.Wins, r.Losses, r.Breakevens))
	sb.WriteString(fmt.Sprintf("| Win Rate | %.1f%% |\n", r.WinRate))
	sb.WriteString(fmt.Sprintf("| Net P/L | %s |\n", FormatMoney(r.NetPnL, opts.Currency)))
	sb.WriteString(fmt.Sprintf("| Gross Profit | %s |\n", FormatMoney(r.GrossProfit, opts.Currency)))
	sb.WriteString(fmt.Sprintf("| Gross Loss | %s |\n", FormatMoney(r.GrossLoss, opts.Currency)))
	sb.WriteString(fmt.Sprintf("| Profit Factor | %s |\n", FormatRatio(r.ProfitFactor)))
	sb.WriteString(fmt.Sprintf("| Avg Win | %s |\n", FormatMoney(r.AvgWin, opts.Currency)))
	sb.WriteString(fmt.Sprintf("| Avg Loss | %s |\n", FormatMoney(r.AvgLoss, opts.Currency)))
	sb.WriteString(fmt.Sprintf("| Risk:Reward | %s |\n", FormatRatio(r.RiskReward)))
	sb.WriteString(fmt.Sprintf("| Max Consecutive Wins | %d |\n", r.MaxConsecutiveWins))
	sb.WriteString(fmt.Sprintf("| Max Consecutive Losses | %d |\n", r.MaxConsecutiveLosses))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %s |\n", FormatMoney(r.MaxDrawdown, opts.Currency)))
	sb.WriteString("\n")

	writeGroupTable(&sb, "By Setup", r.BySetup)
	writeGroupTable(&sb, "By Symbol", r.BySymbol)
	writeGroupTable(&sb, "By Weekday", r.ByWeekday)
	writeGroupTable(&sb, "By Direction", r.ByDirection)

	sb.WriteString("## By Month\n\n")
	sb.WriteString("| Month | P/L | Goal |\n")
	sb.WriteString("|-------|-----|------|\n")
	for _, g := range GoalProgress(r.ByMonth, opts.MonthlyTarget) {
		goal := "-"
		if g.Target.IsPositive() {
			goal = fmt.Sprintf("%.1f%%", g.Percent)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", g.Label, g.PnL.StringFixed(2), goal))
	}
	sb.WriteString("\n")

	return sb.String()
}

func writeGroupTable(sb *strings.Builder, title string, groups []analytics.GroupStats) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	if len(groups) == 0 {
		sb.WriteString("No trades.\n\n")
		return
	}
	sb.WriteString("| Group | Trades | Wins | Losses | Win Rate | P/L | Avg | Avg Win | Avg Loss | R:R |\n")
	sb.WriteString("|-------|--------|------|--------|----------|-----|-----|---------|----------|-----|\n")
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %.1f%% | %s | %s | %s | %s | %s |\n",
			escapeCell(g.Label), g.Count, g.Wins, g.Losses, g.WinRate, g.PnL.StringFixed(2), g.AvgPnL.StringFixed(2),
			g.AvgWin.StringFixed(2), g.AvgLoss.StringFixed(2), FormatRatio(g.RiskReward)))
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
