package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rustyeddy/tradedash/internal/api"
	"github.com/rustyeddy/tradedash/internal/mock"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	Long: `Serve the journal metrics over HTTP.

Endpoints:
  GET    /health
  GET    /api/report        filter query: account, provider, symbol, setup,
                            direction, outcome, q, from, to
  GET    /api/trades
  POST   /api/trades
  GET    /api/trades/{id}
  DELETE /api/trades/{id}
  GET    /api/calendar?month=YYYY-MM
  GET    /api/propfirms

Examples:
  tradedash serve --addr :9090
  TRADEDASH_JOURNAL_TYPE=memory tradedash serve --demo 150`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr string
	serveDemo int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().IntVar(&serveDemo, "demo", 0, "seed the journal with n demo trades before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if serveDemo > 0 {
		for _, t := range mock.Trades(mock.Options{Count: serveDemo, Seed: 1, Now: time.Now()}) {
			if err := store.RecordTrade(t); err != nil {
				return err
			}
		}
		log.Info().Int("trades", serveDemo).Msg("Seeded demo trades")
	}

	accounts, err := cfg.PropFirmAccounts()
	if err != nil {
		return err
	}

	h := api.NewHandler(api.Deps{
		Store:           store,
		Location:        location(),
		StartingBalance: decimal.NewFromFloat(cfg.Account.StartingBalance),
		MonthlyTarget:   decimal.NewFromFloat(cfg.Goals.MonthlyTarget),
		PropFirms:       accounts,
		PropTargetPct:   cfg.Goals.PropTargetPct,
		Log:             log,
	})
	srv := api.NewServer(firstNonEmpty(serveAddr, cfg.Server.Addr), api.NewRouter(h, log), log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
