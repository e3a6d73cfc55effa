// Package mock generates deterministic demo journals.
package mock

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rustyeddy/tradedash/config"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/shopspring/decimal"
)

var (
	Setups    = []string{"Break & Retest", "Supply Zone", "Demand Zone", "Trendline Bounce", "Gap Fill"}
	Symbols   = []string{"ES", "NQ", "AAPL", "TSLA", "AMD", "EURUSD", "BTCUSD"}
	PropFirms = []string{"FTMO", "Apex", "TopStep", "MyForexFunds"}
)

const (
	winProbability    = 0.55
	fundedProbability = 0.40
	contractMultiple  = 50
	defaultDays       = 30
)

var demoNote = "Entry based on 15m candle close above VWAP. Strong volume confirmation.\n\n" +
	"Managed risk by moving stop to breakeven after 1R."

// Options controls the generator. The same Seed and Now always produce the
// same trades.
type Options struct {
	Count int
	Seed  uint64
	Now   time.Time
	Days  int // entries spread over this many days before Now
}

// Trades returns Count synthetic trades ordered by entry time.
func Trades(opts Options) []journal.Trade {
	if opts.Days <= 0 {
		opts.Days = defaultDays
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	trades := make([]journal.Trade, 0, max(opts.Count, 0))
	for i := 0; i < opts.Count; i++ {
		trades = append(trades, generate(rng, i, opts))
	}
	journal.SortByEntry(trades)
	return trades
}

func generate(rng *rand.Rand, i int, opts Options) journal.Trade {
	win := rng.Float64() < winProbability
	dir := journal.Long
	if rng.Float64() < 0.5 {
		dir = journal.Short
	}
	symbol := Symbols[rng.IntN(len(Symbols))]
	setup := Setups[rng.IntN(len(Setups))]

	entry := decimal.NewFromInt(int64(rng.IntN(1000) + 100))
	qty := decimal.NewFromInt(int64(rng.IntN(10) + 1))

	var move string
	switch {
	case dir == journal.Long && win:
		move = "1.02"
	case dir == journal.Long:
		move = "0.99"
	case win:
		move = "0.98"
	default:
		move = "1.01"
	}
	exit := entry.Mul(decimal.RequireFromString(move)).Round(2)

	diff := exit.Sub(entry)
	if dir == journal.Short {
		diff = entry.Sub(exit)
	}
	pnl := diff.Mul(qty).Mul(decimal.NewFromInt(contractMultiple)).Floor()

	day := opts.Now.AddDate(0, 0, -rng.IntN(opts.Days))
	// US cash session, 13:30 to 20:00 UTC.
	open := time.Date(day.Year(), day.Month(), day.Day(), 13, 30, 0, 0, time.UTC)
	entryTime := open.Add(time.Duration(rng.IntN(390)) * time.Minute)
	exitTime := entryTime.Add(time.Duration(5+rng.IntN(120)) * time.Minute)

	t := journal.Trade{
		ID:           fmt.Sprintf("TRD-%d", 1000+i),
		Symbol:       symbol,
		Direction:    dir,
		EntryTime:    entryTime,
		ExitTime:     exitTime,
		EntryPrice:   entry,
		ExitPrice:    exit,
		Quantity:     qty,
		PnL:          pnl,
		Setup:        setup,
		AccountClass: journal.Personal,
		Notes:        demoNote,
	}
	if rng.Float64() < fundedProbability {
		t.AccountClass = journal.Funded
		t.FundingProvider = PropFirms[rng.IntN(len(PropFirms))]
	}
	return t
}

// PropFirmAccounts returns the demo prop-firm accounts written by
// "config init --demo".
func PropFirmAccounts() []config.PropFirmConfig {
	return []config.PropFirmConfig{
		{ID: "1", Firm: "FTMO", Program: "2 Step", Size: 100000, Cost: 540, Status: "PASSED", Stage: "Funded",
			Payouts: 12500, StartDate: "2024-10-15", AccountNumber: "FTMO-882910", Equity: 104200},
		{ID: "2", Firm: "Apex", Program: "1 Step", Size: 50000, Cost: 167, Status: "ACTIVE", Stage: "Evaluation",
			StartDate: "2025-01-10", AccountNumber: "APEX-22910", Equity: 51200},
		{ID: "3", Firm: "TopStep", Program: "2 Step", Size: 150000, Cost: 350, Status: "FAILED", Stage: "Phase 1",
			StartDate: "2024-11-01", AccountNumber: "TS-99281", Equity: 142000},
		{ID: "4", Firm: "MyForexFunds", Program: "Instant", Size: 20000, Cost: 200, Status: "PASSED", Stage: "Funded",
			Payouts: 4200, StartDate: "2024-08-20", AccountNumber: "MFF-11029", Equity: 20800},
	}
}
