package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const metaLastReset = "last_reset_utc"

// Timestamps are stored as fixed-width UTC text so that string ordering in
// SQL (ORDER BY updated_at DESC) matches chronological ordering.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

type SQLite struct {
	db *sql.DB

	now func() time.Time
}

// NewSQLite opens (creating if needed) the raffle database at path, applies
// the schema and seeds the reset epoch with the current time if this is a
// fresh database. WAL mode keeps readers unblocked while a writer commits;
// busy_timeout covers brief writer contention from concurrent handlers.
func NewSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}

	_, err = db.Exec(
		"INSERT OR IGNORE INTO meta(key, value) VALUES(?, ?)",
		metaLastReset, formatTime(s.now()),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed epoch: %w", err)
	}

	return s, nil
}

// ApplyDelta adds delta (either sign) to userID's balance, clamping the
// result at zero, and returns the new balance. A missing row behaves as
// balance 0. The whole read-modify-write is one upsert statement, so two
// concurrent calls for the same user both take effect in some order.
func (s *SQLite) ApplyDelta(ctx context.Context, userID, delta int64) (int64, error) {
	var amount int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tickets(user_id, amount, updated_at)
		VALUES(?, MAX(0, ?), ?)
		ON CONFLICT(user_id) DO UPDATE SET
		  amount = MAX(0, tickets.amount + ?),
		  updated_at = excluded.updated_at
		RETURNING amount`,
		userID, delta, formatTime(s.now()), delta,
	).Scan(&amount)
	if err != nil {
		return 0, fmt.Errorf("apply delta: %w", err)
	}
	return amount, nil
}

// ResetAll zeroes every balance in one statement. Rows are kept, not
// deleted, and their updated_at is refreshed.
func (s *SQLite) ResetAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tickets SET amount = 0, updated_at = ?", formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("reset balances: %w", err)
	}
	return nil
}

// LastReset returns the timestamp of the last full reset. A missing or
// unreadable value falls back to the current time rather than failing.
func (s *SQLite) LastReset(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = ?", metaLastReset).Scan(&value)
	if err == sql.ErrNoRows {
		return s.now().UTC(), nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read epoch: %w", err)
	}

	t, err := parseTime(value)
	if err != nil {
		return s.now().UTC(), nil
	}
	return t, nil
}

// SetLastReset overwrites the reset epoch. Callers zero the balances first
// and stamp the epoch second, so a failure here never leaves a fresh epoch
// pointing at stale balances.
func (s *SQLite) SetLastReset(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaLastReset, formatTime(t))
	if err != nil {
		return fmt.Errorf("set epoch: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}
