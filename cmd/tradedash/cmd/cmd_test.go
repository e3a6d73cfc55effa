package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustyeddy/tradedash/config"
	"github.com/rustyeddy/tradedash/internal/api"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withJournal points the CLI at a fresh CSV journal in a temp dir.
func withJournal(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "trades.csv")
	t.Setenv("TRADEDASH_JOURNAL_TYPE", "csv")
	t.Setenv("TRADEDASH_TRADES_FILE", path)
	t.Setenv("TRADEDASH_LOG_LEVEL", "error")
	t.Setenv("TRADEDASH_TIMEZONE", "UTC")
	return path
}

// resetFlags restores flag variables between runs of the shared rootCmd.
func resetFlags() {
	cfgFile, logLevel, logFormat = "", "", ""
	reportSpec, reportFormat, reportGroup, reportOut, reportTitle = journal.FilterSpec{}, "text", "setup", "", ""
	listSpec, listLimit = journal.FilterSpec{}, 0
	addTrade.id, addTrade.symbol, addTrade.direction = "", "", "long"
	addTrade.entry, addTrade.exit = "", ""
	addTrade.entryPrice, addTrade.exitPrice, addTrade.qty, addTrade.pnl = "0", "0", "1", ""
	addTrade.setup, addTrade.account, addTrade.provider, addTrade.notes = "", "personal", "", ""
	importStrict, exportOut = false, ""
	demoCount, demoSeed, demoDays, demoOut = 100, 1, 30, ""
	configInitOutput, configInitDemo, configValidatePath = "tradedash.yaml", false, ""
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestJournalAddListReport(t *testing.T) {
	withJournal(t)

	out, err := run(t, "journal", "add", "--id", "T1", "--symbol", "ES", "--direction", "long",
		"--entry", "2024-03-04 09:35", "--exit", "2024-03-04 10:10",
		"--entry-price", "5100", "--exit-price", "5104", "--qty", "2", "--setup", "Gap Fill")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded T1 (WIN 8.00)")

	_, err = run(t, "journal", "add", "--id", "T2", "--symbol", "NQ", "--direction", "short",
		"--entry", "2024-03-05 09:35", "--exit", "2024-03-05 09:50",
		"--pnl", "-120", "--account", "funded", "--provider", "FTMO")
	require.NoError(t, err)

	out, err = run(t, "journal", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "T2"), strings.Index(out, "T1"), "newest first")
	assert.Contains(t, out, "2 trade(s)")

	out, err = run(t, "journal", "list", "--outcome", "loss")
	require.NoError(t, err)
	assert.NotContains(t, out, "T1")
	assert.Contains(t, out, "1 trade(s)")

	out, err = run(t, "report", "--format", "json")
	require.NoError(t, err)
	var resp api.ReportResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.Report.TotalTrades)
	assert.Equal(t, "-112", resp.Report.NetPnL.String())
	require.Len(t, resp.Report.ByProvider, 1)
	assert.Equal(t, "FTMO", resp.Report.ByProvider[0].Key)

	out, err = run(t, "report", "--format", "json", "--account", "personal")
	require.NoError(t, err)
	resp = api.ReportResponse{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Report.TotalTrades)
}

func TestJournalAddRejectsInvalid(t *testing.T) {
	withJournal(t)

	_, err := run(t, "journal", "add", "--symbol", "ES", "--account", "funded",
		"--entry", "2024-03-04 09:35", "--exit", "2024-03-04 10:10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "funding_provider")

	_, err = run(t, "journal", "add", "--symbol", "ES",
		"--entry", "yesterday", "--exit", "2024-03-04 10:10")
	assert.ErrorContains(t, err, "--entry")
}

func TestJournalImport(t *testing.T) {
	path := withJournal(t)

	src := filepath.Join(filepath.Dir(path), "export.csv")
	require.NoError(t, os.WriteFile(src, []byte(
		"Trade ID,Symbol,Type,Entry Time,Exit Time,Quantity,PnL,Setup,Account Class\n"+
			"A1,ES,LONG,2024-03-04T14:35:00Z,2024-03-04T15:00:00Z,1,250,Gap Fill,PERSONAL\n"+
			"A2,NQ,SHORT,2024-03-05T14:35:00Z,2024-03-05T15:00:00Z,1,abc,Gap Fill,PERSONAL\n",
	), 0o644))

	_, err := run(t, "journal", "import", src, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad cell")

	out, err := run(t, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No trades.")

	out, err = run(t, "journal", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 trade(s)")
	assert.Contains(t, out, "1 issue(s)")

	out, err = run(t, "journal", "trade", "A1")
	require.NoError(t, err)
	assert.Contains(t, out, "Gap Fill")
}

func TestJournalImportWithoutIDs(t *testing.T) {
	path := withJournal(t)
	dir := filepath.Dir(path)

	header := "Symbol,Type,Entry Time,Exit Time,Quantity,PnL,Account Class\n"
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(first, []byte(header+
		"ES,LONG,2024-03-04T14:35:00Z,2024-03-04T15:00:00Z,1,100,PERSONAL\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(header+
		"NQ,SHORT,2024-03-05T14:35:00Z,2024-03-05T15:00:00Z,1,-40,PERSONAL\n"), 0o644))

	_, err := run(t, "journal", "import", first)
	require.NoError(t, err)
	_, err = run(t, "journal", "import", second)
	require.NoError(t, err)

	out, err := run(t, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 trade(s)")
	assert.Contains(t, out, " ES ")
	assert.Contains(t, out, " NQ ")
	assert.NotContains(t, out, journal.LineIDPrefix)
	assert.Contains(t, out, "TRD-")
}

func TestJournalRm(t *testing.T) {
	withJournal(t)

	_, err := run(t, "journal", "add", "--id", "T1", "--symbol", "ES",
		"--entry", "2024-03-04 09:35", "--exit", "2024-03-04 10:10", "--pnl", "5")
	require.NoError(t, err)

	out, err := run(t, "journal", "rm", "T1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted T1")

	_, err = run(t, "journal", "rm", "T1")
	assert.ErrorContains(t, err, `no trade with id "T1"`)
}

func TestDemoAndCSVReport(t *testing.T) {
	withJournal(t)

	out, err := run(t, "demo", "--count", "40", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Demo Journal")

	out, err = run(t, "report", "--format", "csv", "--group", "weekday")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "key,label,count,wins,losses,breakevens,pnl,win_rate,avg_pnl,avg_win,avg_loss,risk_reward\n"))

	out, err = run(t, "report", "--format", "csv", "--group", "series")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 41)

	_, err = run(t, "report", "--format", "csv", "--group", "hour")
	assert.ErrorContains(t, err, "unknown group")

	_, err = run(t, "report", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestReportWritesFile(t *testing.T) {
	path := withJournal(t)
	target := filepath.Join(filepath.Dir(path), "report.md")

	_, err := run(t, "demo", "--count", "10")
	require.NoError(t, err)

	out, err := run(t, "report", "--format", "markdown", "--out", target, "--title", "March")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "March")
}

func TestReportWritesOrgFile(t *testing.T) {
	path := withJournal(t)
	target := filepath.Join(filepath.Dir(path), "report.org")

	_, err := run(t, "demo", "--count", "10")
	require.NoError(t, err)

	out, err := run(t, "report", "--format", "org", "--out", target, "--title", "Week 10")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "* REPORT: Week 10"))
}

func TestJournalTradeShowsIDTime(t *testing.T) {
	withJournal(t)

	out, err := run(t, "journal", "add", "--symbol", "ES",
		"--entry", "2024-03-04 09:35", "--exit", "2024-03-04 10:10", "--pnl", "5")
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 3)
	tradeID := fields[2]
	require.True(t, strings.HasPrefix(tradeID, "TRD-"), out)

	out, err = run(t, "journal", "trade", tradeID)
	require.NoError(t, err)
	assert.Contains(t, out, "# id stamped 2024-03-04T09:35:00Z")
}

func TestReportBadFilter(t *testing.T) {
	withJournal(t)

	_, err := run(t, "report", "--from", "2024-03-10", "--to", "2024-03-01")
	assert.Error(t, err)
}

func TestConfigInitValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tradedash.yaml")

	out, err := run(t, "config", "init", "-o", path, "--demo")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.PropFirms)

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
}

func TestPropfirm(t *testing.T) {
	path := withJournal(t)
	cfgPath := filepath.Join(filepath.Dir(path), "tradedash.yaml")

	_, err := run(t, "config", "init", "-o", cfgPath, "--demo")
	require.NoError(t, err)

	out, err := run(t, "--config", cfgPath, "propfirm")
	require.NoError(t, err)
	assert.Contains(t, out, "PROP FIRM ACCOUNTS")
	assert.Contains(t, out, "FTMO")
	assert.Contains(t, out, "journal   0 trades")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tradedash version "+version)
}
