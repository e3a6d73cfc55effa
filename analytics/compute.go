package analytics

import (
	"github.com/rustyeddy/tradedash/journal"
	"github.com/shopspring/decimal"
)

// Compute derives a Report from trades. When keep is non-nil only trades it
// accepts contribute. The input slice is never reordered or modified.
//
// Trades are processed by entry time ascending with ties broken by id, so
// the streaks and the cumulative series do not depend on input order.
// Malformed trades are not rejected: zero-valued fields count as zero.
func Compute(trades []journal.Trade, keep func(journal.Trade) bool) Report {
	sorted := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if keep == nil || keep(t) {
			sorted = append(sorted, t)
		}
	}

	r := emptyReport()
	if len(sorted) == 0 {
		return r
	}
	journal.SortByEntry(sorted)

	n := len(sorted)
	r.TotalTrades = n
	r.Start = sorted[0].EntryTime
	r.End = sorted[n-1].EntryTime

	for _, t := range sorted {
		switch t.Outcome() {
		case journal.Win:
			r.Wins++
			r.GrossProfit = r.GrossProfit.Add(t.PnL)
			if t.PnL.GreaterThan(r.LargestWin) {
				r.LargestWin = t.PnL
			}
		case journal.Loss:
			r.Losses++
			r.GrossLoss = r.GrossLoss.Add(t.PnL)
			if t.PnL.LessThan(r.LargestLoss) {
				r.LargestLoss = t.PnL
			}
		default:
			r.Breakevens++
		}
	}

	r.NetPnL = r.GrossProfit.Add(r.GrossLoss)
	r.WinRate = computeWinRate(r.Wins, n)
	r.AvgWin = average(r.GrossProfit, r.Wins)
	r.AvgLoss = average(r.GrossLoss, r.Losses)
	r.AvgTrade = average(r.NetPnL, n)
	r.ProfitFactor = ratio(r.GrossProfit, r.GrossLoss)
	r.RiskReward = ratio(r.AvgWin.Abs(), r.AvgLoss)

	r.MaxConsecutiveWins, r.MaxConsecutiveLosses = computeStreaks(sorted)

	r.BySetup = groupBy(sorted, setupKey, byPnL)
	r.BySymbol = groupBy(sorted, symbolKey, byPnL)
	r.ByWeekday = groupBy(sorted, weekdayKey, byRank)
	r.ByMonth = groupBy(sorted, monthKey, byKey)
	r.ByDay = groupBy(sorted, dayKey, byKey)
	r.ByDirection = groupBy(sorted, directionKey, byRank)
	r.ByAccountClass = groupBy(sorted, accountClassKey, byRank)
	r.ByProvider = groupBy(sorted, providerKey, byPnL)

	r.Cumulative = cumulative(sorted)
	r.MaxDrawdown = computeMaxDrawdown(r.Cumulative)

	return r
}

// computeWinRate returns wins as a percentage of total.
func computeWinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

func average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// computeStreaks walks trades in order. A breakeven ends both streaks.
func computeStreaks(trades []journal.Trade) (maxWins, maxLosses int) {
	wins, losses := 0, 0
	for _, t := range trades {
		switch t.Outcome() {
		case journal.Win:
			wins++
			losses = 0
		case journal.Loss:
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		maxWins = max(maxWins, wins)
		maxLosses = max(maxLosses, losses)
	}
	return maxWins, maxLosses
}
