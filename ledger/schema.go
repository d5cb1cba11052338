// ledger/schema.go
package ledger

const Schema = `
CREATE TABLE IF NOT EXISTS tickets (
	user_id INTEGER PRIMARY KEY,
	amount INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guild_id INTEGER NOT NULL,
	actor_id INTEGER NOT NULL,
	target_id INTEGER,
	delta INTEGER NOT NULL,
	reason TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS draws (
	id TEXT PRIMARY KEY,
	winner_id INTEGER NOT NULL,
	total_entries INTEGER NOT NULL,
	participants INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tickets_amount ON tickets(amount);
CREATE INDEX IF NOT EXISTS idx_ticket_log_created ON ticket_log(created_at);
`
