package journal

import (
	"fmt"
	"strings"
	"time"
)

// Filter narrows a trade set. Zero-valued fields match everything.
// From and To bound the entry time as [From, To).
type Filter struct {
	AccountClass    AccountClass
	FundingProvider string
	Symbol          string
	Setup           string
	Direction       Direction
	Outcome         Outcome
	From            time.Time
	To              time.Time

	// Search is a case-insensitive substring matched against symbol or setup.
	Search string
}

func (f Filter) Match(t Trade) bool {
	if f.AccountClass != "" && t.AccountClass != f.AccountClass {
		return false
	}
	if f.FundingProvider != "" && !strings.EqualFold(t.FundingProvider, f.FundingProvider) {
		return false
	}
	if f.Symbol != "" && !strings.EqualFold(t.Symbol, f.Symbol) {
		return false
	}
	if f.Setup != "" && !strings.EqualFold(t.Setup, f.Setup) {
		return false
	}
	if f.Direction != "" && t.Direction != f.Direction {
		return false
	}
	if f.Outcome != "" && t.Outcome() != f.Outcome {
		return false
	}
	if !f.From.IsZero() && t.EntryTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.EntryTime.Before(f.To) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Symbol), q) &&
			!strings.Contains(strings.ToLower(t.Setup), q) {
			return false
		}
	}
	return true
}

// IsZero reports whether the filter matches every trade.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Apply returns the trades matching f, preserving order.
func (f Filter) Apply(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// DayBounds returns [start of day, start of next day) for a YYYY-MM-DD string.
func DayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

// MonthBounds returns [first of month, first of next month) for YYYY-MM.
func MonthBounds(loc *time.Location, month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), nil
}

// FilterSpec is a Filter in the string form typed on the command line or
// sent as query parameters. From and To are YYYY-MM-DD days in the
// caller's location and To includes the whole day.
type FilterSpec struct {
	Account   string
	Provider  string
	Symbol    string
	Setup     string
	Direction string
	Outcome   string
	Search    string
	From      string
	To        string
}

// Filter parses s. Empty fields stay open.
func (s FilterSpec) Filter(loc *time.Location) (Filter, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := Filter{
		FundingProvider: strings.TrimSpace(s.Provider),
		Symbol:          strings.TrimSpace(s.Symbol),
		Setup:           strings.TrimSpace(s.Setup),
		Search:          strings.TrimSpace(s.Search),
	}

	var err error
	if s.Account != "" {
		if f.AccountClass, err = ParseAccountClass(s.Account); err != nil {
			return Filter{}, err
		}
	}
	if s.Direction != "" {
		if f.Direction, err = ParseDirection(s.Direction); err != nil {
			return Filter{}, err
		}
	}
	if s.Outcome != "" {
		if f.Outcome, err = ParseOutcome(s.Outcome); err != nil {
			return Filter{}, err
		}
	}
	if s.From != "" {
		if f.From, _, err = DayBounds(loc, s.From); err != nil {
			return Filter{}, fmt.Errorf("from: %w", err)
		}
	}
	if s.To != "" {
		if _, f.To, err = DayBounds(loc, s.To); err != nil {
			return Filter{}, fmt.Errorf("to: %w", err)
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
		return Filter{}, fmt.Errorf("from %s is after to %s", s.From, s.To)
	}
	return f, nil
}
