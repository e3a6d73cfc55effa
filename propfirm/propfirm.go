// Package propfirm tracks evaluation and funded accounts bought from
// proprietary trading firms.
package propfirm

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Passed Status = "PASSED"
	Active Status = "ACTIVE"
	Failed Status = "FAILED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case Passed, Active, Failed:
		return st, nil
	}
	return "", fmt.Errorf("unknown account status %q", s)
}

// Account is one purchased challenge or funded account.
type Account struct {
	ID            string          `json:"id"`
	Firm          string          `json:"firm"`
	Program       string          `json:"program"`
	Size          decimal.Decimal `json:"size"`
	Cost          decimal.Decimal `json:"cost"`
	Status        Status          `json:"status"`
	Stage         string          `json:"stage"`
	Payouts       decimal.Decimal `json:"payouts"`
	StartDate     time.Time       `json:"start_date"`
	AccountNumber string          `json:"account_number"`
	Equity        decimal.Decimal `json:"equity"`
}

// Net is what the account has returned so far: open profit plus payouts
// minus the fee paid.
func (a Account) Net() decimal.Decimal {
	return a.Equity.Sub(a.Size).Add(a.Payouts).Sub(a.Cost)
}

// Summary aggregates a set of accounts.
type Summary struct {
	Accounts      int             `json:"accounts"`
	Passed        int             `json:"passed"`
	Active        int             `json:"active"`
	Failed        int             `json:"failed"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	TotalPayouts  decimal.Decimal `json:"total_payouts"`
	NetReturn     decimal.Decimal `json:"net_return"`
	ROI           float64         `json:"roi"`
	ActiveCapital decimal.Decimal `json:"active_capital"`
	PassRate      float64         `json:"pass_rate"`
}

var hundred = decimal.NewFromInt(100)

// Summarize totals fees and payouts. ROI is 0 when nothing was spent and
// PassRate is 0 when there are no accounts. Active capital counts the size
// of passed and active accounts.
func Summarize(accounts []Account) Summary {
	var s Summary
	s.Accounts = len(accounts)
	for _, a := range accounts {
		s.TotalSpent = s.TotalSpent.Add(a.Cost)
		s.TotalPayouts = s.TotalPayouts.Add(a.Payouts)
		switch a.Status {
		case Passed:
			s.Passed++
			s.ActiveCapital = s.ActiveCapital.Add(a.Size)
		case Active:
			s.Active++
			s.ActiveCapital = s.ActiveCapital.Add(a.Size)
		case Failed:
			s.Failed++
		}
	}

	s.NetReturn = s.TotalPayouts.Sub(s.TotalSpent)
	if s.TotalSpent.IsPositive() {
		s.ROI = s.NetReturn.Div(s.TotalSpent).Mul(hundred).InexactFloat64()
	}
	if s.Accounts > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Accounts) * 100
	}
	return s
}

// Progress is the share of the profit target reached, in percent, where the
// target is targetPct of the account size (0.1 for a 10% target).
func Progress(a Account, targetPct float64) float64 {
	if a.Size.IsZero() || targetPct <= 0 {
		return 0
	}
	goal := a.Size.Mul(decimal.NewFromFloat(targetPct))
	return a.Equity.Sub(a.Size).Div(goal).Mul(hundred).InexactFloat64()
}

// ByStatus returns accounts ordered passed, active, failed, then by start date.
func ByStatus(accounts []Account) []Account {
	rank := map[Status]int{Passed: 0, Active: 1, Failed: 2}
	out := append([]Account(nil), accounts...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank[out[i].Status], rank[out[j].Status]
		if ri != rj {
			return ri < rj
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}
