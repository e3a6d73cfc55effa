package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	entry := time.Date(2024, 9, 12, 14, 30, 0, 0, time.UTC)
	tr := sampleTrade("TRD-01J8ZK3V", entry, "-125.5")
	tr.AccountClass = Funded
	tr.FundingProvider = "FTMO"
	tr.Notes = "Faded the open into resistance."

	out := FormatTradeOrg(tr)

	assert.True(t, strings.HasPrefix(out, "** Trade: ES LONG (TRD-01J8) LOSS\n"))
	assert.Contains(t, out, ":TRADE_ID: TRD-01J8ZK3V\n")
	assert.Contains(t, out, ":ENTRY_PRICE: 5000.25\n")
	assert.Contains(t, out, ":ENTRY_TIME: 2024-09-12T14:30:00Z\n")
	assert.Contains(t, out, ":EXIT_TIME: 2024-09-12T15:00:00Z\n")
	assert.Contains(t, out, ":PNL: -125.50\n")
	assert.Contains(t, out, ":ACCOUNT: FUNDED (FTMO)\n")
	assert.Contains(t, out, "*** Thesis\nFaded the open into resistance.\n")
	assert.Contains(t, out, "*** Review\n- \n")
}

func TestFormatTradeOrgWithoutNotes(t *testing.T) {
	t.Parallel()

	tr := sampleTrade("T1", time.Time{}, "0")
	out := FormatTradeOrg(tr)

	assert.Contains(t, out, "** Trade: ES LONG (T1) BREAKEVEN")
	assert.Contains(t, out, ":ENTRY_TIME: \n")
	assert.Contains(t, out, ":ACCOUNT: PERSONAL\n")
	assert.Contains(t, out, "*** Thesis\n- \n")
}

func TestFormatTradesOrgSeparatesBlocks(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FormatTradesOrg([]Trade{sampleTrade("T1", at, "1"), sampleTrade("T2", at, "2")})

	assert.Equal(t, 2, strings.Count(out, "** Trade:"))
	assert.Contains(t, out, "- \n\n\n** Trade: ES LONG (T2)")
	assert.Empty(t, FormatTradesOrg(nil))
}
