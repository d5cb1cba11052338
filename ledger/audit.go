package ledger

import (
	"context"
	"fmt"
)

// RecordAudit appends one mutation record to the audit trail. It is written
// after the balance change commits and is never rolled back onto it; the id
// is assigned by the store.
func (s *SQLite) RecordAudit(ctx context.Context, rec AuditRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ticket_log (guild_id, actor_id, target_id, delta, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.GuildID, rec.ActorID, rec.TargetID, rec.Delta, rec.Reason, formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// RecentAudit returns up to limit audit records, newest first.
func (s *SQLite) RecentAudit(ctx context.Context, limit int) ([]AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, actor_id, target_id, delta, COALESCE(reason, ''), created_at
		FROM ticket_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var (
			rec     AuditRecord
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.GuildID, &rec.ActorID, &rec.TargetID,
			&rec.Delta, &rec.Reason, &created); err != nil {
			return nil, err
		}
		t, err := parseTime(created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		rec.CreatedAt = t
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordDraw persists the outcome of one completed winner draw.
func (s *SQLite) RecordDraw(ctx context.Context, rec DrawRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO draws (id, winner_id, total_entries, participants, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.WinnerID, rec.TotalEntries, rec.Participants, formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("record draw: %w", err)
	}
	return nil
}

// RecentDraws returns up to limit draw records, newest first. Draw IDs are
// ULIDs, so ordering by id is ordering by time.
func (s *SQLite) RecentDraws(ctx context.Context, limit int) ([]DrawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, winner_id, total_entries, participants, created_at
		FROM draws
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query draws: %w", err)
	}
	defer rows.Close()

	var out []DrawRecord
	for rows.Next() {
		var (
			rec     DrawRecord
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.WinnerID, &rec.TotalEntries,
			&rec.Participants, &created); err != nil {
			return nil, err
		}
		t, err := parseTime(created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		rec.CreatedAt = t
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
