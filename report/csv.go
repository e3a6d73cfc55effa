package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/shopspring/decimal"
)

var groupHeader = []string{"key", "label", "count", "wins", "losses", "breakevens", "pnl", "win_rate", "avg_pnl", "avg_win", "avg_loss", "risk_reward"}

// WriteGroupsCSV writes one row per group.
func WriteGroupsCSV(w io.Writer, groups []analytics.GroupStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(groupHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, g := range groups {
		row := []string{
			g.Key,
			g.Label,
			strconv.Itoa(g.Count),
			strconv.Itoa(g.Wins),
			strconv.Itoa(g.Losses),
			strconv.Itoa(g.Breakevens),
			g.PnL.StringFixed(2),
			strconv.FormatFloat(g.WinRate, 'f', 2, 64),
			g.AvgPnL.StringFixed(2),
			g.AvgWin.StringFixed(2),
			g.AvgLoss.StringFixed(2),
			g.RiskReward.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write group %q: %w", g.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes the cumulative series with the equity balance
// offset by start.
func WriteSeriesCSV(w io.Writer, points []analytics.CumulativePoint, start decimal.Decimal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "trade_id", "time", "pnl", "cumulative", "balance"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Index),
			p.TradeID,
			p.Time.UTC().Format(time.RFC3339),
			p.PnL.StringFixed(2),
			p.Cumulative.StringFixed(2),
			start.Add(p.Cumulative).StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write point %d: %w", p.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
