package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// Balance returns userID's current balance, 0 when the user has no row.
func (s *SQLite) Balance(ctx context.Context, userID int64) (int64, error) {
	var amount int64
	err := s.db.QueryRowContext(ctx,
		"SELECT amount FROM tickets WHERE user_id = ?", userID).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return amount, nil
}

// TopN returns up to limit positive-balance entries ordered by balance
// descending, ties broken by most recent update first.
func (s *SQLite) TopN(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, amount, updated_at
		FROM tickets
		WHERE amount > 0
		ORDER BY amount DESC, updated_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// AllPositive returns every entry with a positive balance, in no particular
// order. This is the population the weighted draw runs over.
func (s *SQLite) AllPositive(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, amount, updated_at
		FROM tickets
		WHERE amount > 0`)
	if err != nil {
		return nil, fmt.Errorf("query positive entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// TotalEntries returns the sum of all positive balances, 0 when none.
func (s *SQLite) TotalEntries(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM tickets WHERE amount > 0").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum entries: %w", err)
	}
	return total, nil
}

// TotalParticipants returns the number of users holding a positive balance.
func (s *SQLite) TotalParticipants(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE amount > 0").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			updated string
		)
		if err := rows.Scan(&e.UserID, &e.Amount, &updated); err != nil {
			return nil, err
		}
		t, err := parseTime(updated)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		e.UpdatedAt = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
