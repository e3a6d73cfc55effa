package analytics

import (
	"time"

	"github.com/rustyeddy/tradedash/journal"
	"github.com/shopspring/decimal"
)

// cumulative builds the running P&L sum, one point per trade.
func cumulative(trades []journal.Trade) []CumulativePoint {
	out := make([]CumulativePoint, len(trades))
	running := decimal.Zero
	for i, t := range trades {
		running = running.Add(t.PnL)
		out[i] = CumulativePoint{
			Index:      i + 1,
			TradeID:    t.ID,
			Time:       t.EntryTime,
			PnL:        t.PnL,
			Cumulative: running,
		}
	}
	return out
}

// computeMaxDrawdown is the worst peak-to-trough fall of the cumulative
// series. The peak starts at zero, so an opening loss counts.
func computeMaxDrawdown(points []CumulativePoint) decimal.Decimal {
	peak := decimal.Zero
	worst := decimal.Zero
	for _, p := range points {
		if p.Cumulative.GreaterThan(peak) {
			peak = p.Cumulative
		}
		if dd := peak.Sub(p.Cumulative); dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return worst
}

// EquityPoint is an account balance after a trade.
type EquityPoint struct {
	Index   int             `json:"index"`
	Time    time.Time       `json:"time"`
	Balance decimal.Decimal `json:"balance"`
}

// EquityCurve offsets the cumulative series by a starting balance. The
// first point is the starting balance itself at the first trade's time.
func EquityCurve(points []CumulativePoint, start decimal.Decimal) []EquityPoint {
	if len(points) == 0 {
		return []EquityPoint{}
	}
	out := make([]EquityPoint, 0, len(points)+1)
	out = append(out, EquityPoint{Index: 0, Time: points[0].Time, Balance: start})
	for _, p := range points {
		out = append(out, EquityPoint{Index: p.Index, Time: p.Time, Balance: start.Add(p.Cumulative)})
	}
	return out
}
