package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)
	funded := sampleTrade("F1", base, "200")
	funded.AccountClass = Funded
	funded.FundingProvider = "TopStep"
	funded.Symbol = "NQ"
	funded.Setup = "Supply Zone"
	funded.Direction = Short

	personal := sampleTrade("P1", base.Add(48*time.Hour), "-75")

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter keeps all", Filter{}, []string{"F1", "P1"}},
		{"account class", Filter{AccountClass: Funded}, []string{"F1"}},
		{"provider case-insensitive", Filter{FundingProvider: "topstep"}, []string{"F1"}},
		{"symbol", Filter{Symbol: "es"}, []string{"P1"}},
		{"setup", Filter{Setup: "supply zone"}, []string{"F1"}},
		{"direction", Filter{Direction: Long}, []string{"P1"}},
		{"outcome", Filter{Outcome: Loss}, []string{"P1"}},
		{"search matches setup", Filter{Search: "retest"}, []string{"P1"}},
		{"search matches symbol", Filter{Search: "n"}, []string{"F1"}},
		{"from inclusive", Filter{From: base}, []string{"F1", "P1"}},
		{"to exclusive", Filter{To: base.Add(48 * time.Hour)}, []string{"F1"}},
		{"no match", Filter{Symbol: "BTCUSD"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply([]Trade{funded, personal})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Symbol: "ES"}.IsZero())
}

func TestDayAndMonthBounds(t *testing.T) {
	t.Parallel()

	start, end, err := DayBounds(time.UTC, "2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)

	start, end, err = MonthBounds(time.UTC, "2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = DayBounds(time.UTC, "yesterday")
	assert.Error(t, err)
}

func TestOutcomeDerivedFromPnL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pnl  string
		want Outcome
	}{
		{"0.01", Win},
		{"-0.01", Loss},
		{"0", Breakeven},
		{"0.000", Breakeven},
	}
	for _, tt := range tests {
		t.Run(tt.pnl, func(t *testing.T) {
			tr := Trade{PnL: decimal.RequireFromString(tt.pnl)}
			assert.Equal(t, tt.want, tr.Outcome())
		})
	}
	assert.Equal(t, Breakeven, Trade{}.Outcome())
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection("buy")
	require.NoError(t, err)
	assert.Equal(t, Long, d)
	_, err = ParseDirection("flat")
	assert.Error(t, err)

	c, err := ParseAccountClass("prop_firm")
	require.NoError(t, err)
	assert.Equal(t, Funded, c)
	c, err = ParseAccountClass("live")
	require.NoError(t, err)
	assert.Equal(t, Personal, c)

	o, err := ParseOutcome("be")
	require.NoError(t, err)
	assert.Equal(t, Breakeven, o)
}

func TestInLocation(t *testing.T) {
	t.Parallel()

	ny := time.FixedZone("EDT", -4*3600)

	// Saturday 02:00 UTC is still Friday evening in New York.
	tr := sampleTrade("T1", time.Date(2024, 6, 8, 2, 0, 0, 0, time.UTC), "1")
	in := InLocation([]Trade{tr}, ny)

	assert.Equal(t, time.Saturday, tr.EntryTime.Weekday())
	assert.Equal(t, time.Friday, in[0].EntryTime.Weekday())
	assert.True(t, in[0].EntryTime.Equal(tr.EntryTime))
}

func TestFilterSpec(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EST", -5*3600)
	f, err := FilterSpec{
		Account:   "prop_firm",
		Provider:  " FTMO ",
		Direction: "sell",
		Outcome:   "win",
		From:      "2024-03-01",
		To:        "2024-03-31",
	}.Filter(loc)
	require.NoError(t, err)

	assert.Equal(t, Funded, f.AccountClass)
	assert.Equal(t, "FTMO", f.FundingProvider)
	assert.Equal(t, Short, f.Direction)
	assert.Equal(t, Win, f.Outcome)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), f.From)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, loc), f.To)

	empty, err := FilterSpec{}.Filter(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	for _, bad := range []FilterSpec{
		{Account: "cash"},
		{Direction: "up"},
		{Outcome: "maybe"},
		{From: "03/01/2024"},
		{From: "2024-03-05", To: "2024-03-01"},
	} {
		_, err := bad.Filter(time.UTC)
		assert.Error(t, err, "%+v", bad)
	}
}
