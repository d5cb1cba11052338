// Package ledger persists raffle entry balances, the reset epoch, the
// mutation audit trail and completed draw records in a single SQLite
// database.
package ledger

import (
	"database/sql"
	"time"
)

// Entry is one member's current balance.
type Entry struct {
	UserID    int64
	Amount    int64
	UpdatedAt time.Time
}

// AuditRecord describes one balance mutation. Records are append-only;
// the ID is assigned by the store and strictly increases.
type AuditRecord struct {
	ID        int64
	GuildID   int64
	ActorID   int64
	TargetID  sql.NullInt64 // absent for mutations without a single target
	Delta     int64
	Reason    string
	CreatedAt time.Time
}

// DrawRecord is the persisted outcome of one completed winner draw.
type DrawRecord struct {
	ID           string // ULID, time-sortable
	WinnerID     int64
	TotalEntries int64
	Participants int64
	CreatedAt    time.Time
}

// Target wraps a user ID into a present audit target.
func Target(userID int64) sql.NullInt64 {
	return sql.NullInt64{Int64: userID, Valid: true}
}
