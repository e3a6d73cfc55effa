package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineIDPrefix starts the placeholder id ReadCSV gives a row without one.
// The placeholder only names the row within its file.
const LineIDPrefix = "line-"

// CSVHeader is the column order written by CSVJournal.
var CSVHeader = []string{
	"trade_id", "symbol", "direction", "entry_time", "exit_time",
	"entry_price", "exit_price", "quantity", "pnl",
	"setup", "account_class", "funding_provider", "notes",
}

// CSVJournal appends trades to a CSV file. It never rewrites earlier rows;
// when the file is read back the last row for an id wins.
type CSVJournal struct {
	w  *csv.Writer
	tf *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	tf, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	info, err := tf.Stat()
	if err != nil {
		_ = tf.Close()
		return nil, err
	}

	w := csv.NewWriter(tf)
	if info.Size() == 0 {
		if err := w.Write(CSVHeader); err != nil {
			_ = tf.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = tf.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, tf: tf}, nil
}

func (j *CSVJournal) RecordTrade(t Trade) error {
	if err := j.w.Write(csvRow(t)); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.tf.Close()
		return err
	}
	return j.tf.Close()
}

// WriteCSV writes a header and one row per trade to w.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		if err := cw.Write(csvRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(t Trade) []string {
	return []string{
		t.ID,
		t.Symbol,
		string(t.Direction),
		formatTime(t.EntryTime),
		formatTime(t.ExitTime),
		t.EntryPrice.String(),
		t.ExitPrice.String(),
		t.Quantity.String(),
		t.PnL.String(),
		t.Setup,
		string(t.AccountClass),
		t.FundingProvider,
		t.Notes,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// FieldIssue describes a cell that could not be parsed and was replaced by
// its zero value.
type FieldIssue struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (i FieldIssue) Error() string {
	return fmt.Sprintf("line %d: %s %q: %s", i.Line, i.Column, i.Value, i.Reason)
}

// column aliases, keyed by normalized header name
var csvAliases = map[string]string{
	"tradeid": "trade_id", "id": "trade_id",
	"symbol": "symbol", "instrument": "symbol",
	"direction": "direction", "type": "direction", "side": "direction",
	"entrytime": "entry_time", "entrydate": "entry_time", "opentime": "entry_time",
	"exittime": "exit_time", "exitdate": "exit_time", "closetime": "exit_time",
	"entryprice": "entry_price",
	"exitprice":  "exit_price",
	"quantity":   "quantity", "qty": "quantity", "units": "quantity",
	"pnl": "pnl", "realizedpl": "pnl", "profit": "pnl",
	"setup": "setup", "setuptag": "setup", "strategy": "setup",
	"accountclass": "account_class", "accounttype": "account_class",
	"fundingprovider": "funding_provider", "accountfirm": "funding_provider", "firm": "funding_provider",
	"notes": "notes",
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp")
}

// ReadCSV parses trades leniently. A header row is optional; when present,
// columns are matched by name (including the dashboard's export names) and
// unknown columns are ignored. Without a header CSVHeader order is assumed.
// Unparseable cells become zero values and are reported as issues; rows
// are never dropped for bad values.
func ReadCSV(r io.Reader) ([]Trade, []FieldIssue, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	trades := []Trade{}
	if len(rows) == 0 {
		return trades, nil, nil
	}

	columns := CSVHeader
	start := 0
	if isHeader(rows[0]) {
		columns = make([]string, len(rows[0]))
		for i, name := range rows[0] {
			columns[i] = csvAliases[normalizeHeader(name)]
		}
		start = 1
	}

	var issues []FieldIssue
	for n, row := range rows[start:] {
		line := start + n + 1
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		t, rowIssues := parseRow(line, columns, row)
		issues = append(issues, rowIssues...)
		trades = append(trades, t)
	}
	return trades, issues, nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		if csvAliases[normalizeHeader(cell)] == "symbol" {
			return true
		}
	}
	return false
}

func parseRow(line int, columns, row []string) (Trade, []FieldIssue) {
	var (
		t      Trade
		issues []FieldIssue
	)
	bad := func(col, val, reason string) {
		issues = append(issues, FieldIssue{Line: line, Column: col, Value: val, Reason: reason})
	}
	num := func(col, val string) decimal.Decimal {
		if val == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(val)
		if err != nil {
			bad(col, val, "not a number, using 0")
			return decimal.Zero
		}
		return d
	}
	ts := func(col, val string) time.Time {
		if val == "" {
			return time.Time{}
		}
		v, err := parseTime(val)
		if err != nil {
			bad(col, val, err.Error())
		}
		return v
	}

	for i, col := range columns {
		if i >= len(row) {
			break
		}
		val := strings.TrimSpace(row[i])
		switch col {
		case "trade_id":
			t.ID = val
		case "symbol":
			t.Symbol = val
		case "direction":
			if val == "" {
				continue
			}
			d, err := ParseDirection(val)
			if err != nil {
				bad(col, val, "unknown direction")
			}
			t.Direction = d
		case "entry_time":
			t.EntryTime = ts(col, val)
		case "exit_time":
			t.ExitTime = ts(col, val)
		case "entry_price":
			t.EntryPrice = num(col, val)
		case "exit_price":
			t.ExitPrice = num(col, val)
		case "quantity":
			t.Quantity = num(col, val)
		case "pnl":
			t.PnL = num(col, val)
		case "setup":
			t.Setup = val
		case "account_class":
			if val == "" {
				continue
			}
			c, err := ParseAccountClass(val)
			if err != nil {
				bad(col, val, "unknown account class")
			}
			t.AccountClass = c
		case "funding_provider":
			t.FundingProvider = val
		case "notes":
			t.Notes = row[i]
		}
	}
	if t.ID == "" {
		t.ID = fmt.Sprintf("%s%d", LineIDPrefix, line)
	}
	return t, issues
}

// LoadCSV reads a CSV journal file into a Memory store. Later rows replace
// earlier rows with the same id.
func LoadCSV(path string) (*Memory, []FieldIssue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	trades, issues, err := ReadCSV(f)
	if err != nil {
		return nil, issues, fmt.Errorf("read %s: %w", path, err)
	}
	return NewMemory(trades...), issues, nil
}
