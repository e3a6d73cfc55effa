package journal

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	require.NoError(t, err)
	assert.Equal(t, CSVHeader, header)
}

func TestCSVJournalAppendsWithoutSecondHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	entry := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", entry, "-12.5")))
	require.NoError(t, j.Close())

	j, err = NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleTrade("T2", entry.Add(time.Hour), "30")))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"T1", "ES", "LONG",
		entry.Format(time.RFC3339),
		entry.Add(30 * time.Minute).Format(time.RFC3339),
		"5000.25", "5004.75", "2", "-12.5",
		"Break & Retest", "PERSONAL", "", "",
	}, rows[1])
	assert.Equal(t, "T2", rows[2][0])
}

func TestCSVRoundTripThroughLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	entry := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", entry, "100")))
	require.NoError(t, j.RecordTrade(sampleTrade("T2", entry.Add(time.Hour), "-50")))
	// an edit appended later replaces the first row on load
	require.NoError(t, j.RecordTrade(sampleTrade("T1", entry, "120")))
	require.NoError(t, j.Close())

	store, issues, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, issues)

	all, err := store.ListTrades()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "T1", all[0].ID)
	assert.True(t, all[0].PnL.Equal(decimal.NewFromInt(120)))
	assert.True(t, all[0].EntryTime.Equal(entry))
}

func TestReadCSVCoercesBadCells(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"trade_id,symbol,direction,entry_time,exit_time,entry_price,exit_price,quantity,pnl,setup,account_class",
		"T1,NQ,SHORT,2024-02-05T10:00:00Z,2024-02-05T10:20:00Z,abc,17000,1,oops,Gap Fill,FUNDED",
		"T2,AAPL,sideways,not-a-date,,190,191,,25,Supply Zone,PERSONAL",
	}, "\n")

	trades, issues, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.True(t, trades[0].EntryPrice.IsZero())
	assert.True(t, trades[0].PnL.IsZero())
	assert.Equal(t, Breakeven, trades[0].Outcome())
	assert.Equal(t, Short, trades[0].Direction)

	assert.Equal(t, Direction(""), trades[1].Direction)
	assert.True(t, trades[1].EntryTime.IsZero())
	assert.True(t, trades[1].Quantity.IsZero())
	assert.True(t, trades[1].PnL.Equal(decimal.NewFromInt(25)))

	cols := []string{}
	for _, is := range issues {
		cols = append(cols, is.Column)
	}
	assert.ElementsMatch(t, []string{"entry_price", "pnl", "direction", "entry_time"}, cols)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Error(), "line 2")
}

func TestReadCSVDashboardExportColumns(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"id,symbol,type,entryDate,exitDate,entryPrice,exitPrice,quantity,pnl,status,setup,accountType,accountFirm",
		"TRD-1000,TSLA,LONG,2025-01-10T15:00:00.000Z,2025-01-10T16:00:00.000Z,250,255,2,500,WIN,Demand Zone,PROP_FIRM,Apex",
		"TRD-1001,ES,SHORT,2025-01-11T15:00:00.000Z,2025-01-11T15:30:00.000Z,5000,5000,1,0,BE,Gap Fill,LIVE,",
	}, "\n")

	trades, issues, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, trades, 2)

	assert.Equal(t, "TRD-1000", trades[0].ID)
	assert.Equal(t, Funded, trades[0].AccountClass)
	assert.Equal(t, "Apex", trades[0].FundingProvider)
	assert.Equal(t, "Demand Zone", trades[0].Setup)
	assert.Equal(t, Personal, trades[1].AccountClass)
	assert.Equal(t, Breakeven, trades[1].Outcome())
}

func TestReadCSVWithoutHeader(t *testing.T) {
	t.Parallel()

	in := "T9,EURUSD,LONG,2024-06-03,2024-06-03,1.08,1.09,10000,100,Trendline Bounce,PERSONAL,,\n"

	trades, issues, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, trades, 1)
	assert.Equal(t, "T9", trades[0].ID)
	assert.Equal(t, time.June, trades[0].EntryTime.Month())
}

func TestReadCSVAssignsMissingIDs(t *testing.T) {
	t.Parallel()

	in := "symbol,pnl\nES,10\nNQ,-5\n"

	trades, _, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "line-2", trades[0].ID)
	assert.Equal(t, "line-3", trades[1].ID)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	entry := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, WriteCSV(&buf, []Trade{sampleTrade("T1", entry, "1")}))

	trades, issues, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, trades, 1)
	assert.Equal(t, "T1", trades[0].ID)
}
