package report

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/shopspring/decimal"
)

type orgView struct {
	Title   string
	Created time.Time
	Opts    Options
	Goals   []MonthGoal
	analytics.Report
}

var orgFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"ratio": FormatRatio,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"positive": func(d decimal.Decimal) bool { return d.IsPositive() },
	"returnPct": func(r analytics.Report, start decimal.Decimal) string {
		return fmt.Sprintf("%.2f", ReturnPct(r, start))
	},
}

var orgTemplate = template.Must(template.New("report").Funcs(orgFuncs).Parse(OrgTemplate))

// RenderOrg renders r as an Org-mode document.
func RenderOrg(r analytics.Report, opts Options) (string, error) {
	v := orgView{
		Title:   opts.title(),
		Created: opts.Created,
		Opts:    opts,
		Goals:   GoalProgress(r.ByMonth, opts.MonthlyTarget),
		Report:  r,
	}

	buf := new(bytes.Buffer)
	if err := orgTemplate.Execute(buf, v); err != nil {
		return "", fmt.Errorf("render org report: %w", err)
	}
	return buf.String(), nil
}

// WriteOrg renders r and writes it to path.
func WriteOrg(path string, r analytics.Report, opts Options) error {
	out, err := RenderOrg(r, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

const OrgTemplate = `* REPORT: {{.Title}}
:PROPERTIES:
:START_DATE:  {{if .Empty}}(none){{else}}{{.Start.Format "2006-01-02"}}{{end}}
:END_DATE:    {{if .Empty}}(none){{else}}{{.End.Format "2006-01-02"}}{{end}}
:TRADES:      {{.TotalTrades}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:BREAKEVEN:   {{.Breakevens}}
:WIN_RATE:    {{printf "%.2f" .WinRate}}
:NET_PL:      {{money .NetPnL}}
:PROFIT_FAC:  {{ratio .ProfitFactor}}
:RISK_REWARD: {{ratio .RiskReward}}
:MAX_DD:      {{money .MaxDrawdown}}
{{- if positive .Opts.StartingBalance}}
:START_BAL:   {{money .Opts.StartingBalance}}
:RETURN_PCT:  {{returnPct .Report .Opts.StartingBalance}}
{{- end}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .NetPnL}}*
- Win Rate:         *{{printf "%.2f" .WinRate}}%*
- Profit Factor:    *{{ratio .ProfitFactor}}*
- Avg Win / Loss:   *{{money .AvgWin}} / {{money .AvgLoss}}*
- Largest Win/Loss: *{{money .LargestWin}} / {{money .LargestLoss}}*
- Streaks:          *{{.MaxConsecutiveWins}}W / {{.MaxConsecutiveLosses}}L*

** Trade Distribution
| Outcome   | Count |
|-----------+-------|
| Wins      | {{.Wins}} |
| Losses    | {{.Losses}} |
| Breakeven | {{.Breakevens}} |
| Total     | {{.TotalTrades}} |
{{- if .BySetup}}

** By Setup
| Setup | Trades | Win% | P/L |
|-------+--------+------+-----|
{{- range .BySetup}}
| {{.Label}} | {{.Count}} | {{printf "%.1f" .WinRate}} | {{money .PnL}} |
{{- end}}
{{- end}}
{{- if .ByWeekday}}

** By Weekday
| Day | Trades | Win% | P/L |
|-----+--------+------+-----|
{{- range .ByWeekday}}
| {{.Label}} | {{.Count}} | {{printf "%.1f" .WinRate}} | {{money .PnL}} |
{{- end}}
{{- end}}
{{- if .Goals}}

** Monthly Goals
| Month | P/L | Goal % |
|-------+-----+--------|
{{- range .Goals}}
| {{.Label}} | {{money .PnL}} | {{if positive .Target}}{{printf "%.1f" .Percent}}{{else}}-{{end}} |
{{- end}}
{{- end}}
`
