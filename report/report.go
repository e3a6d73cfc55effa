// Package report renders analytics reports for people: fixed-width text,
// Markdown, CSV and Org-mode.
package report

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/shopspring/decimal"
)

// Options is view configuration owned by the caller. None of it affects
// the computed metrics.
type Options struct {
	Title           string
	Currency        string
	StartingBalance decimal.Decimal
	MonthlyTarget   decimal.Decimal
	Created         time.Time
}

func (o Options) title() string {
	if o.Title == "" {
		return "Trading Performance"
	}
	return o.Title
}

// FormatRatio renders an unbounded ratio as the infinity sign.
func FormatRatio(r analytics.Ratio) string {
	if r.Unbounded {
		return "∞"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// FormatMoney renders d with two decimals and an optional currency suffix.
func FormatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + currency
}

// MonthGoal compares a month's P&L against a target.
type MonthGoal struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	PnL     decimal.Decimal `json:"pnl"`
	Target  decimal.Decimal `json:"target"`
	Percent float64         `json:"percent"`
	Met     bool            `json:"met"`
}

// GoalProgress returns one entry per month. A non-positive target gives 0%
// and never counts as met.
func GoalProgress(months []analytics.GroupStats, target decimal.Decimal) []MonthGoal {
	out := make([]MonthGoal, len(months))
	for i, m := range months {
		g := MonthGoal{Key: m.Key, Label: m.Label, PnL: m.PnL, Target: target}
		if target.IsPositive() {
			g.Percent = m.PnL.Div(target).Mul(decimal.NewFromInt(100)).InexactFloat64()
			g.Met = m.PnL.GreaterThanOrEqual(target)
		}
		out[i] = g
	}
	return out
}

// ReturnPct is net P&L as a percentage of the starting balance.
func ReturnPct(r analytics.Report, start decimal.Decimal) float64 {
	if !start.IsPositive() {
		return 0
	}
	return r.NetPnL.Div(start).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
