package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradedash/journal"
)

// groupKey maps a trade to its bucket. rank orders buckets that have a
// natural calendar or enum order. ok=false leaves the trade out.
type groupKey func(t journal.Trade) (key, label string, rank int, ok bool)

type ordering int

const (
	byPnL ordering = iota
	byKey
	byRank
)

const noLabel = "(none)"

func labelOr(s string) string {
	if s == "" {
		return noLabel
	}
	return s
}

func setupKey(t journal.Trade) (string, string, int, bool) {
	return t.Setup, labelOr(t.Setup), 0, true
}

func symbolKey(t journal.Trade) (string, string, int, bool) {
	return t.Symbol, labelOr(t.Symbol), 0, true
}

// weekdayKey uses the weekday of the entry time in its own location.
// Monday ranks first and Sunday last.
func weekdayKey(t journal.Trade) (string, string, int, bool) {
	wd := t.EntryTime.Weekday()
	return wd.String(), wd.String()[:3], (int(wd) + 6) % 7, true
}

func monthKey(t journal.Trade) (string, string, int, bool) {
	return t.EntryTime.Format("2006-01"), t.EntryTime.Format("Jan 2006"), 0, true
}

func dayKey(t journal.Trade) (string, string, int, bool) {
	return t.EntryTime.Format(time.DateOnly), t.EntryTime.Format("Mon Jan 2"), 0, true
}

func directionKey(t journal.Trade) (string, string, int, bool) {
	rank := 2
	switch t.Direction {
	case journal.Long:
		rank = 0
	case journal.Short:
		rank = 1
	}
	return string(t.Direction), labelOr(string(t.Direction)), rank, true
}

func accountClassKey(t journal.Trade) (string, string, int, bool) {
	rank := 2
	switch t.AccountClass {
	case journal.Personal:
		rank = 0
	case journal.Funded:
		rank = 1
	}
	return string(t.AccountClass), labelOr(string(t.AccountClass)), rank, true
}

// providerKey buckets funded trades by their funding provider.
func providerKey(t journal.Trade) (string, string, int, bool) {
	if t.AccountClass != journal.Funded {
		return "", "", 0, false
	}
	return t.FundingProvider, labelOr(t.FundingProvider), 0, true
}

type bucket struct {
	stats GroupStats
	rank  int
}

// groupBy does a single pass into a map of buckets, then derives the per
// group rates and returns the buckets in the requested order.
func groupBy(trades []journal.Trade, keyFn groupKey, order ordering) []GroupStats {
	buckets := make(map[string]*bucket)
	for _, t := range trades {
		key, label, rank, ok := keyFn(t)
		if !ok {
			continue
		}
		b, found := buckets[key]
		if !found {
			b = &bucket{stats: GroupStats{Key: key, Label: label}, rank: rank}
			buckets[key] = b
		}
		b.stats.Count++
		b.stats.PnL = b.stats.PnL.Add(t.PnL)
		switch t.Outcome() {
		case journal.Win:
			b.stats.Wins++
			b.stats.GrossProfit = b.stats.GrossProfit.Add(t.PnL)
		case journal.Loss:
			b.stats.Losses++
			b.stats.GrossLoss = b.stats.GrossLoss.Add(t.PnL)
		default:
			b.stats.Breakevens++
		}
	}

	all := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		b.stats.WinRate = computeWinRate(b.stats.Wins, b.stats.Count)
		b.stats.AvgPnL = average(b.stats.PnL, b.stats.Count)
		b.stats.AvgWin = average(b.stats.GrossProfit, b.stats.Wins)
		b.stats.AvgLoss = average(b.stats.GrossLoss, b.stats.Losses)
		b.stats.RiskReward = ratio(b.stats.AvgWin, b.stats.AvgLoss)
		all = append(all, b)
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		switch order {
		case byPnL:
			if c := a.stats.PnL.Cmp(b.stats.PnL); c != 0 {
				return c > 0
			}
		case byRank:
			if a.rank != b.rank {
				return a.rank < b.rank
			}
		}
		return a.stats.Key < b.stats.Key
	})

	out := make([]GroupStats, len(all))
	for i, b := range all {
		out[i] = b.stats
	}
	return out
}

// Find returns the group with the given key.
func Find(groups []GroupStats, key string) (GroupStats, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return GroupStats{}, false
}
