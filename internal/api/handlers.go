package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/pkg/id"
	"github.com/rustyeddy/tradedash/propfirm"
	"github.com/rustyeddy/tradedash/report"
	"github.com/shopspring/decimal"
)

// Deps are the collaborators a Handler reads from.
type Deps struct {
	Store           journal.Store
	Location        *time.Location
	StartingBalance decimal.Decimal
	MonthlyTarget   decimal.Decimal
	PropFirms       []propfirm.Account
	PropTargetPct   float64
	Log             zerolog.Logger
	Now             func() time.Time
}

// Handler serves the dashboard endpoints. Reports are computed per request
// from the store and never cached.
type Handler struct {
	Deps
}

func NewHandler(d Deps) *Handler {
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{Deps: d}
}

// ReportResponse is the body of GET /api/report.
type ReportResponse struct {
	Report analytics.Report        `json:"report"`
	Equity []analytics.EquityPoint `json:"equity"`
	Goals  []report.MonthGoal      `json:"goals"`
}

// GetReport returns metrics for the trades matching the query filter.
// GET /api/report?account=funded&provider=FTMO&from=2024-01-01&to=2024-01-31
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	trades, ok := h.trades(w)
	if !ok {
		return
	}

	rep := analytics.Compute(trades, f.Match)
	respondJSON(w, http.StatusOK, ReportResponse{
		Report: rep,
		Equity: analytics.EquityCurve(rep.Cumulative, h.StartingBalance),
		Goals:  report.GoalProgress(rep.ByMonth, h.MonthlyTarget),
	})
}

// ListTrades returns matching trades, newest entry first.
// GET /api/trades?q=retest&outcome=win
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	trades, ok := h.trades(w)
	if !ok {
		return
	}

	out := f.Apply(trades)
	slices.Reverse(out)
	respondJSON(w, http.StatusOK, out)
}

// GetTrade returns one trade.
// GET /api/trades/{id}
func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := mux.Vars(r)["id"]

	t, err := h.Store.GetTrade(tradeID)
	if err != nil {
		h.storeError(w, err, tradeID)
		return
	}
	respondJSON(w, http.StatusOK, t.In(h.Location))
}

// CreateTrade validates and records a trade. An empty id is assigned.
// POST /api/trades
func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var t journal.Trade
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid trade body: "+err.Error())
		return
	}
	if t.ID == "" {
		t.ID = id.NewTrade()
	}
	if err := journal.Validate(t); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Store.RecordTrade(t); err != nil {
		h.Log.Error().Err(err).Str("trade_id", t.ID).Msg("Failed to record trade")
		respondError(w, http.StatusInternalServerError, "Failed to record trade")
		return
	}

	h.Log.Info().Str("trade_id", t.ID).Str("symbol", t.Symbol).Msg("Trade recorded")
	respondJSON(w, http.StatusCreated, t.In(h.Location))
}

// DeleteTrade removes a trade.
// DELETE /api/trades/{id}
func (h *Handler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := mux.Vars(r)["id"]
	if err := h.Store.DeleteTrade(tradeID); err != nil {
		h.storeError(w, err, tradeID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalendarResponse is the body of GET /api/calendar.
type CalendarResponse struct {
	Month  string                 `json:"month"`
	Trades int                    `json:"trades"`
	NetPnL decimal.Decimal        `json:"net_pnl"`
	Days   []analytics.GroupStats `json:"days"`
}

// GetCalendar returns per-day results for one month, the current month
// when none is given.
// GET /api/calendar?month=2024-03
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.Now().In(h.Location).Format("2006-01")
	}
	start, end, err := journal.MonthBounds(h.Location, month)
	if err != nil {
		respondError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	trades, err := h.Store.ListTradesEnteredBetween(start, end)
	if err != nil {
		h.Log.Error().Err(err).Str("month", month).Msg("Failed to list trades")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve trades")
		return
	}

	rep := analytics.Compute(journal.InLocation(trades, h.Location), nil)
	respondJSON(w, http.StatusOK, CalendarResponse{
		Month:  month,
		Trades: rep.TotalTrades,
		NetPnL: rep.NetPnL,
		Days:   rep.ByDay,
	})
}

// PropFirmAccount is an account with its progress toward the profit target.
type PropFirmAccount struct {
	propfirm.Account
	Net      decimal.Decimal `json:"net"`
	Progress float64         `json:"progress"`
}

// PropFirmsResponse is the body of GET /api/propfirms.
type PropFirmsResponse struct {
	Summary  propfirm.Summary       `json:"summary"`
	Accounts []PropFirmAccount      `json:"accounts"`
	Trades   []analytics.GroupStats `json:"trades_by_provider"`
}

// GetPropFirms returns the prop-firm tracker.
// GET /api/propfirms
func (h *Handler) GetPropFirms(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.trades(w)
	if !ok {
		return
	}

	accounts := make([]PropFirmAccount, 0, len(h.PropFirms))
	for _, a := range propfirm.ByStatus(h.PropFirms) {
		accounts = append(accounts, PropFirmAccount{
			Account:  a,
			Net:      a.Net(),
			Progress: propfirm.Progress(a, h.PropTargetPct),
		})
	}

	funded := journal.Filter{AccountClass: journal.Funded}
	respondJSON(w, http.StatusOK, PropFirmsResponse{
		Summary:  propfirm.Summarize(h.PropFirms),
		Accounts: accounts,
		Trades:   analytics.Compute(trades, funded.Match).ByProvider,
	})
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (journal.Filter, bool) {
	q := r.URL.Query()
	f, err := journal.FilterSpec{
		Account:   q.Get("account"),
		Provider:  q.Get("provider"),
		Symbol:    q.Get("symbol"),
		Setup:     q.Get("setup"),
		Direction: q.Get("direction"),
		Outcome:   q.Get("outcome"),
		Search:    q.Get("q"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}.Filter(h.Location)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return journal.Filter{}, false
	}
	return f, true
}

// trades loads the whole journal in the handler's location.
func (h *Handler) trades(w http.ResponseWriter) ([]journal.Trade, bool) {
	trades, err := h.Store.ListTrades()
	if err != nil {
		h.Log.Error().Err(err).Msg("Failed to list trades")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve trades")
		return nil, false
	}
	return journal.InLocation(trades, h.Location), true
}

func (h *Handler) storeError(w http.ResponseWriter, err error, tradeID string) {
	if errors.Is(err, journal.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.Log.Error().Err(err).Str("trade_id", tradeID).Msg("Store failure")
	respondError(w, http.StatusInternalServerError, "Failed to access journal")
}
