package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradedash/config"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/pkg/logger"
	"github.com/rustyeddy/tradedash/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradedash",
	Short: "Trading journal analytics",
	Long: `Tradedash keeps a trading journal and turns it into performance metrics.

It provides tools for:
  - Recording and importing closed trades (SQLite or CSV journal)
  - Win rate, profit factor, risk:reward, streaks and drawdown
  - Rollups by setup, symbol, weekday, month and account
  - Text, Markdown, Org-mode, CSV and JSON reports
  - Tracking prop-firm evaluation and funded accounts
  - Serving the metrics to the dashboard over HTTP`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
	log = zerolog.Nop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, YAML or JSON (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (overrides config)")
}

// setup loads the config and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	initLogger(cmd)
	return nil
}

func initLogger(cmd *cobra.Command) {
	level, format := logLevel, logFormat
	if cfg != nil {
		level = firstNonEmpty(level, cfg.Log.Level)
		format = firstNonEmpty(format, cfg.Log.Format)
	}
	log = logger.New(level, format, cmd.ErrOrStderr())
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// openStore opens the journal selected by the config.
func openStore() (journal.Store, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		log.Debug().Str("path", cfg.Journal.DBPath).Msg("Opened SQLite journal")
		return j, nil
	case "csv":
		s, issues, err := journal.OpenCSVStore(cfg.Journal.TradesFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		logIssues(cfg.Journal.TradesFile, issues)
		return s, nil
	case "memory":
		log.Warn().Msg("Memory journal: trades are discarded on exit")
		return journal.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
}

func logIssues(source string, issues []journal.FieldIssue) {
	for _, is := range issues {
		log.Warn().
			Str("source", source).
			Int("line", is.Line).
			Str("column", is.Column).
			Str("value", is.Value).
			Msg(is.Reason)
	}
}

func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.UTC
	}
	return loc
}

func reportOptions(title string) report.Options {
	return report.Options{
		Title:           title,
		Currency:        cfg.Account.Currency,
		StartingBalance: decimal.NewFromFloat(cfg.Account.StartingBalance),
		MonthlyTarget:   decimal.NewFromFloat(cfg.Goals.MonthlyTarget),
		Created:         time.Now().In(location()),
	}
}

// loadTrades lists every trade in the account timezone.
func loadTrades(store journal.Store) ([]journal.Trade, error) {
	trades, err := store.ListTrades()
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return journal.InLocation(trades, location()), nil
}

// addFilterFlags binds the shared trade filter flags to spec.
func addFilterFlags(cmd *cobra.Command, spec *journal.FilterSpec) {
	f := cmd.Flags()
	f.StringVar(&spec.Account, "account", "", "account class: personal or funded")
	f.StringVar(&spec.Provider, "provider", "", "funding provider, e.g. FTMO")
	f.StringVar(&spec.Symbol, "symbol", "", "symbol, e.g. ES")
	f.StringVar(&spec.Setup, "setup", "", "setup label")
	f.StringVar(&spec.Direction, "direction", "", "long or short")
	f.StringVar(&spec.Outcome, "outcome", "", "win, loss or breakeven")
	f.StringVarP(&spec.Search, "search", "q", "", "substring of symbol or setup")
	f.StringVar(&spec.From, "from", "", "first entry day, YYYY-MM-DD")
	f.StringVar(&spec.To, "to", "", "last entry day, YYYY-MM-DD (inclusive)")
}
