package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, symbol, direction, entry_time, exit_time, entry_price, exit_price, quantity, pnl, setup, account_class, funding_provider, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (Trade, error) {
	var (
		rec       Trade
		direction string
		class     string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Symbol,
		&direction,
		&rec.EntryTime,
		&rec.ExitTime,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.Quantity,
		&rec.PnL,
		&rec.Setup,
		&class,
		&rec.FundingProvider,
		&rec.Notes,
	)
	if err != nil {
		return Trade{}, err
	}
	rec.Direction = Direction(direction)
	rec.AccountClass = AccountClass(class)
	return rec, nil
}

func notFound(tradeID string) error {
	return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
}

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(tradeID string) (Trade, error) {
	row := j.db.QueryRow(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, notFound(tradeID)
		}
		return Trade{}, err
	}
	return rec, nil
}

// ListTrades returns every trade ordered by entry time.
func (j *SQLite) ListTrades() ([]Trade, error) {
	rows, err := j.db.Query(`
		SELECT ` + tradeColumns + `
		FROM trades
		ORDER BY entry_time ASC, trade_id ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListTradesEnteredBetween returns trades whose entry_time is within [start, end).
func (j *SQLite) ListTradesEnteredBetween(start, end time.Time) ([]Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE entry_time >= ? AND entry_time < ?
		ORDER BY entry_time ASC, trade_id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Trade, error) {
	defer rows.Close()

	out := []Trade{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
