package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer for search; the trade notes seed the
// Thesis section and Execution/Review are left as placeholders.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s) %s", t.Symbol, t.Direction, shortID(t.ID), t.Outcome())

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":QUANTITY: %s\n", t.Quantity.String()))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", t.EntryPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", t.ExitPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":ENTRY_TIME: %s\n", orgTime(t.EntryTime)))
	b.WriteString(fmt.Sprintf(":EXIT_TIME: %s\n", orgTime(t.ExitTime)))
	b.WriteString(fmt.Sprintf(":PNL: %s\n", t.PnL.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":SETUP: %s\n", t.Setup))
	b.WriteString(fmt.Sprintf(":ACCOUNT: %s\n", accountLabel(t)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n")
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n\n")
	} else {
		b.WriteString("- \n\n")
	}
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func accountLabel(t Trade) string {
	if t.AccountClass == Funded && t.FundingProvider != "" {
		return fmt.Sprintf("%s (%s)", t.AccountClass, t.FundingProvider)
	}
	return string(t.AccountClass)
}

func orgTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	// RFC3339 in UTC for copy/paste friendliness.
	return t.UTC().Format(time.RFC3339)
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
