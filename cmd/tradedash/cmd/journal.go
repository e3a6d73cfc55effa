package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/pkg/id"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query journal trades",
	Long: `Record, import and display trades in the configured journal.

Subcommands:
  trade   - Show one trade by ID
  today   - List trades entered today
  day     - List trades entered on a specific day
  list    - List trades matching the filter flags
  add     - Record a trade
  import  - Import trades from a CSV export
  export  - Write the journal as CSV
  rm      - Delete a trade

Examples:
  tradedash journal trade TRD-01HQ...
  tradedash journal day 2024-01-15
  tradedash journal list --setup "Gap Fill" --outcome loss
  tradedash journal import trades.csv --strict`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Show details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades entered today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDay(cmd, time.Now().In(location()).Format(time.DateOnly))
	},
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades entered on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDay(cmd, args[0])
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Long: `Record a closed trade. Times are read in the account timezone.
When --pnl is omitted it is computed from the prices and quantity.

Example:
  tradedash journal add --symbol ES --direction long \
    --entry "2024-03-04 09:35" --exit "2024-03-04 10:10" \
    --entry-price 5100.25 --exit-price 5104.5 --qty 2 \
    --setup "Break & Retest" --account funded --provider FTMO`,
	Args: cobra.NoArgs,
	RunE: runJournalAdd,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from a CSV file",
	Long: `Import trades from a CSV file. Bad cells are coerced to zero values
and reported; with --strict any bad cell or invalid trade aborts the
import before anything is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalImport,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the journal as CSV",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var journalRmCmd = &cobra.Command{
	Use:     "rm <trade-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    runJournalRm,
}

var (
	listSpec  journal.FilterSpec
	listLimit int

	addTrade struct {
		id, symbol, direction    string
		entry, exit              string
		entryPrice, exitPrice    string
		qty, pnl                 string
		setup, account, provider string
		notes                    string
	}

	importStrict bool
	exportOut    string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd, journalTodayCmd, journalDayCmd, journalListCmd,
		journalAddCmd, journalImportCmd, journalExportCmd, journalRmCmd)

	addFilterFlags(journalListCmd, &listSpec)
	journalListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show at most n trades (0 for all)")

	f := journalAddCmd.Flags()
	f.StringVar(&addTrade.id, "id", "", "trade id (generated when empty)")
	f.StringVar(&addTrade.symbol, "symbol", "", "symbol (required)")
	f.StringVar(&addTrade.direction, "direction", "long", "long or short")
	f.StringVar(&addTrade.entry, "entry", "", "entry time, e.g. \"2024-03-04 09:35\" (required)")
	f.StringVar(&addTrade.exit, "exit", "", "exit time (required)")
	f.StringVar(&addTrade.entryPrice, "entry-price", "0", "entry price")
	f.StringVar(&addTrade.exitPrice, "exit-price", "0", "exit price")
	f.StringVar(&addTrade.qty, "qty", "1", "quantity")
	f.StringVar(&addTrade.pnl, "pnl", "", "realized profit or loss")
	f.StringVar(&addTrade.setup, "setup", "", "setup label")
	f.StringVar(&addTrade.account, "account", "personal", "personal or funded")
	f.StringVar(&addTrade.provider, "provider", "", "funding provider, required for funded trades")
	f.StringVar(&addTrade.notes, "notes", "", "free-form notes")
	_ = journalAddCmd.MarkFlagRequired("symbol")
	_ = journalAddCmd.MarkFlagRequired("entry")
	_ = journalAddCmd.MarkFlagRequired("exit")

	journalImportCmd.Flags().BoolVar(&importStrict, "strict", false, "abort on any coerced cell or invalid trade")
	journalExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, journal.FormatTradeOrg(rec.In(location())))
	if stamped, err := id.Time(rec.ID); err == nil {
		fmt.Fprintf(w, "# id stamped %s\n", stamped.In(location()).Format(time.RFC3339))
	}
	return nil
}

func printDay(cmd *cobra.Command, day string) error {
	start, end, err := journal.DayBounds(location(), day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.ListTradesEnteredBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(journal.InLocation(recs, location())))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	f, err := listSpec.Filter(location())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := loadTrades(store)
	if err != nil {
		return err
	}
	trades = f.Apply(trades)
	slices.Reverse(trades)
	if listLimit > 0 && len(trades) > listLimit {
		trades = trades[:listLimit]
	}

	printTrades(cmd.OutOrStdout(), trades)
	return nil
}

func printTrades(w io.Writer, trades []journal.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(w, "No trades.")
		return
	}
	fmt.Fprintf(w, "%-30s %-16s %-8s %-5s %-20s %-14s %12s  %s\n",
		"ID", "ENTRY", "SYMBOL", "DIR", "SETUP", "ACCOUNT", "PNL", "RESULT")
	for _, t := range trades {
		account := string(t.AccountClass)
		if t.FundingProvider != "" {
			account = t.FundingProvider
		}
		fmt.Fprintf(w, "%-30s %-16s %-8s %-5s %-20.20s %-14.14s %12s  %s\n",
			t.ID,
			t.EntryTime.Format("2006-01-02 15:04"),
			t.Symbol,
			t.Direction,
			t.Setup,
			account,
			t.PnL.StringFixed(2),
			t.Outcome(),
		)
	}
	fmt.Fprintf(w, "\n%d trade(s)\n", len(trades))
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	t, err := buildTrade()
	if err != nil {
		return err
	}
	if err := journal.Validate(t); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordTrade(t); err != nil {
		return fmt.Errorf("record trade: %w", err)
	}
	log.Info().Str("trade_id", t.ID).Str("symbol", t.Symbol).Str("pnl", t.PnL.String()).Msg("Trade recorded")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s (%s %s)\n", t.ID, t.Outcome(), t.PnL.StringFixed(2))
	return nil
}

func buildTrade() (journal.Trade, error) {
	a := addTrade
	loc := location()

	dir, err := journal.ParseDirection(a.direction)
	if err != nil {
		return journal.Trade{}, err
	}
	class, err := journal.ParseAccountClass(a.account)
	if err != nil {
		return journal.Trade{}, err
	}
	entry, err := parseWhen(a.entry, loc)
	if err != nil {
		return journal.Trade{}, fmt.Errorf("--entry: %w", err)
	}
	exit, err := parseWhen(a.exit, loc)
	if err != nil {
		return journal.Trade{}, fmt.Errorf("--exit: %w", err)
	}

	t := journal.Trade{
		ID:              a.id,
		Symbol:          a.symbol,
		Direction:       dir,
		EntryTime:       entry,
		ExitTime:        exit,
		Setup:           a.setup,
		AccountClass:    class,
		FundingProvider: a.provider,
		Notes:           a.notes,
	}
	for _, n := range []struct {
		flag string
		val  string
		dst  *decimal.Decimal
	}{
		{"--entry-price", a.entryPrice, &t.EntryPrice},
		{"--exit-price", a.exitPrice, &t.ExitPrice},
		{"--qty", a.qty, &t.Quantity},
	} {
		if *n.dst, err = decimal.NewFromString(n.val); err != nil {
			return journal.Trade{}, fmt.Errorf("%s: %w", n.flag, err)
		}
	}

	if a.pnl != "" {
		if t.PnL, err = decimal.NewFromString(a.pnl); err != nil {
			return journal.Trade{}, fmt.Errorf("--pnl: %w", err)
		}
	} else {
		t.PnL = grossPnL(t)
	}
	if t.ID == "" {
		t.ID = id.TradeAt(t.EntryTime)
	}
	return t, nil
}

// grossPnL is the price move times quantity in the trade's direction.
func grossPnL(t journal.Trade) decimal.Decimal {
	move := t.ExitPrice.Sub(t.EntryPrice)
	if t.Direction == journal.Short {
		move = move.Neg()
	}
	return move.Mul(t.Quantity)
}

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseWhen(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, want YYYY-MM-DD HH:MM", s)
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	trades, issues, err := journal.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	logIssues(path, issues)

	if importStrict {
		if len(issues) > 0 {
			return fmt.Errorf("%s: %d bad cell(s), first: %w", path, len(issues), issues[0])
		}
		var errs []error
		for _, t := range trades {
			if err := journal.Validate(t); err != nil {
				errs = append(errs, fmt.Errorf("trade %s: %w", t.ID, err))
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, t := range trades {
		if strings.HasPrefix(t.ID, journal.LineIDPrefix) {
			t.ID = id.TradeAt(t.EntryTime)
		}
		if err := store.RecordTrade(t); err != nil {
			return fmt.Errorf("record trade %s: %w", t.ID, err)
		}
	}
	log.Info().Str("file", path).Int("trades", len(trades)).Int("issues", len(issues)).Msg("Import complete")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trade(s) from %s (%d issue(s))\n", len(trades), path, len(issues))
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := store.ListTrades()
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	w := cmd.OutOrStdout()
	if exportOut != "" {
		file, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer file.Close()
		w = file
	}
	return journal.WriteCSV(w, trades)
}

func runJournalRm(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteTrade(args[0]); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			return fmt.Errorf("no trade with id %q", args[0])
		}
		return fmt.Errorf("delete trade: %w", err)
	}
	log.Info().Str("trade_id", args[0]).Msg("Trade deleted")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	return nil
}
