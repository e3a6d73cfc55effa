package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Store backed by a single SQLite file. Timestamps are written
// in UTC so range queries compare correctly.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordTrade inserts t, replacing any existing trade with the same id.
func (j *SQLite) RecordTrade(t Trade) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO trades
		(`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, string(t.Direction),
		t.EntryTime.UTC(), t.ExitTime.UTC(),
		t.EntryPrice, t.ExitPrice, t.Quantity, t.PnL,
		t.Setup, string(t.AccountClass), t.FundingProvider, t.Notes,
	)
	return err
}

func (j *SQLite) DeleteTrade(tradeID string) error {
	res, err := j.db.Exec(`DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(tradeID)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
