package analytics

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Ratio is a quotient that may be unbounded. An unbounded ratio carries a
// zero Value so that no Inf or NaN ever reaches JSON.
type Ratio struct {
	Value     float64 `json:"value"`
	Unbounded bool    `json:"unbounded"`
}

// ratio divides num by |den|. A zero denominator yields Unbounded when num
// is positive and a zero ratio otherwise.
func ratio(num, den decimal.Decimal) Ratio {
	if den.IsZero() {
		return Ratio{Unbounded: num.IsPositive()}
	}
	return Ratio{Value: num.Div(den.Abs()).InexactFloat64()}
}

func (r Ratio) String() string {
	if r.Unbounded {
		return "inf"
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// GroupStats is one bucket of a rollup. The win and loss averages follow
// the report-wide rules: breakevens count toward AvgPnL only.
type GroupStats struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Count       int             `json:"count"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Breakevens  int             `json:"breakevens"`
	PnL         decimal.Decimal `json:"pnl"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`
	WinRate     float64         `json:"win_rate"`
	AvgPnL      decimal.Decimal `json:"avg_pnl"`
	AvgWin      decimal.Decimal `json:"avg_win"`
	AvgLoss     decimal.Decimal `json:"avg_loss"`
	RiskReward  Ratio           `json:"risk_reward"`
}

// CumulativePoint is one step of the running P&L series.
type CumulativePoint struct {
	Index      int             `json:"index"`
	TradeID    string          `json:"trade_id"`
	Time       time.Time       `json:"time"`
	PnL        decimal.Decimal `json:"pnl"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Report is the full set of metrics derived from a trade sequence. It is
// recomputed on demand and holds no reference to its input.
type Report struct {
	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Breakevens  int     `json:"breakevens"`
	WinRate     float64 `json:"win_rate"`

	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`
	NetPnL      decimal.Decimal `json:"net_pnl"`
	AvgWin      decimal.Decimal `json:"avg_win"`
	AvgLoss     decimal.Decimal `json:"avg_loss"`
	AvgTrade    decimal.Decimal `json:"avg_trade"`
	LargestWin  decimal.Decimal `json:"largest_win"`
	LargestLoss decimal.Decimal `json:"largest_loss"`
	MaxDrawdown decimal.Decimal `json:"max_drawdown"`

	ProfitFactor Ratio `json:"profit_factor"`
	RiskReward   Ratio `json:"risk_reward"`

	MaxConsecutiveWins   int `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int `json:"max_consecutive_losses"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	BySetup        []GroupStats      `json:"by_setup"`
	BySymbol       []GroupStats      `json:"by_symbol"`
	ByWeekday      []GroupStats      `json:"by_weekday"`
	ByMonth        []GroupStats      `json:"by_month"`
	ByDay          []GroupStats      `json:"by_day"`
	ByDirection    []GroupStats      `json:"by_direction"`
	ByAccountClass []GroupStats      `json:"by_account_class"`
	ByProvider     []GroupStats      `json:"by_provider"`
	Cumulative     []CumulativePoint `json:"cumulative"`
}

// Empty reports whether no trades contributed to r.
func (r Report) Empty() bool { return r.TotalTrades == 0 }

func emptyReport() Report {
	return Report{
		BySetup:        []GroupStats{},
		BySymbol:       []GroupStats{},
		ByWeekday:      []GroupStats{},
		ByMonth:        []GroupStats{},
		ByDay:          []GroupStats{},
		ByDirection:    []GroupStats{},
		ByAccountClass: []GroupStats{},
		ByProvider:     []GroupStats{},
		Cumulative:     []CumulativePoint{},
	}
}
