// journal/journal.go
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by stores when a trade id is unknown.
var ErrNotFound = errors.New("trade not found")

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// ParseDirection accepts LONG/SHORT in any case, plus BUY/SELL.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", "BUY":
		return Long, nil
	case "SHORT", "SELL":
		return Short, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

type AccountClass string

const (
	Personal AccountClass = "PERSONAL"
	Funded   AccountClass = "FUNDED"
)

// ParseAccountClass accepts the canonical names and the LIVE / PROP_FIRM
// spellings used by older dashboard exports.
func ParseAccountClass(s string) (AccountClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PERSONAL", "LIVE":
		return Personal, nil
	case "FUNDED", "PROP", "PROP_FIRM", "PROPFIRM":
		return Funded, nil
	}
	return "", fmt.Errorf("unknown account class %q", s)
}

type Outcome string

const (
	Win       Outcome = "WIN"
	Loss      Outcome = "LOSS"
	Breakeven Outcome = "BREAKEVEN"
)

// ParseOutcome accepts WIN, LOSS, BREAKEVEN and the short form BE.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WIN":
		return Win, nil
	case "LOSS":
		return Loss, nil
	case "BREAKEVEN", "BE":
		return Breakeven, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// Trade is a closed journal entry. Edits replace the record wholesale.
type Trade struct {
	ID              string          `json:"id" validate:"required"`
	Symbol          string          `json:"symbol" validate:"required"`
	Direction       Direction       `json:"direction" validate:"oneof=LONG SHORT"`
	EntryTime       time.Time       `json:"entry_time" validate:"required"`
	ExitTime        time.Time       `json:"exit_time" validate:"required,gtefield=EntryTime"`
	EntryPrice      decimal.Decimal `json:"entry_price"`
	ExitPrice       decimal.Decimal `json:"exit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	PnL             decimal.Decimal `json:"pnl"`
	Setup           string          `json:"setup"`
	AccountClass    AccountClass    `json:"account_class" validate:"oneof=PERSONAL FUNDED"`
	FundingProvider string          `json:"funding_provider,omitempty" validate:"required_if=AccountClass FUNDED"`
	Notes           string          `json:"notes,omitempty"`
}

// Outcome is derived from the sign of PnL and never stored.
func (t Trade) Outcome() Outcome {
	switch t.PnL.Sign() {
	case 1:
		return Win
	case -1:
		return Loss
	}
	return Breakeven
}

// In returns a copy of t with both timestamps in loc.
func (t Trade) In(loc *time.Location) Trade {
	if loc == nil {
		return t
	}
	t.EntryTime = t.EntryTime.In(loc)
	t.ExitTime = t.ExitTime.In(loc)
	return t
}

// InLocation converts every trade to loc, returning a new slice.
func InLocation(trades []Trade, loc *time.Location) []Trade {
	out := make([]Trade, len(trades))
	for i, t := range trades {
		out[i] = t.In(loc)
	}
	return out
}

// Journal records trades.
type Journal interface {
	RecordTrade(Trade) error
	Close() error
}

// Store is a Journal that can also be read back.
type Store interface {
	Journal
	GetTrade(tradeID string) (Trade, error)
	ListTrades() ([]Trade, error)
	ListTradesEnteredBetween(start, end time.Time) ([]Trade, error)
	DeleteTrade(tradeID string) error
}

var (
	_ Store   = (*SQLite)(nil)
	_ Store   = (*Memory)(nil)
	_ Store   = (*CSVStore)(nil)
	_ Journal = (*CSVJournal)(nil)
)
