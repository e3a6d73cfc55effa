// journal/schema.go
package journal

// Prices, quantities and P/L are stored as TEXT so decimals round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME NOT NULL,
	entry_price TEXT NOT NULL,
	exit_price TEXT NOT NULL,
	quantity TEXT NOT NULL,
	pnl TEXT NOT NULL,
	setup TEXT NOT NULL,
	account_class TEXT NOT NULL,
	funding_provider TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_entry_time ON trades(entry_time);
`
