// Package raffle coordinates the entry ledger, audit trail and draw engine
// behind the operations the command layer invokes: single and bulk entry
// mutations, pool queries, the monthly reset and the weighted winner roll.
package raffle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/raffle/ledger"
)

// Store is the persistence surface the service needs. *ledger.SQLite
// satisfies it; tests substitute failing implementations.
type Store interface {
	ApplyDelta(ctx context.Context, userID, delta int64) (int64, error)
	Balance(ctx context.Context, userID int64) (int64, error)
	TopN(ctx context.Context, limit int) ([]ledger.Entry, error)
	AllPositive(ctx context.Context) ([]ledger.Entry, error)
	TotalEntries(ctx context.Context) (int64, error)
	TotalParticipants(ctx context.Context) (int64, error)
	ResetAll(ctx context.Context) error
	LastReset(ctx context.Context) (time.Time, error)
	SetLastReset(ctx context.Context, t time.Time) error
	RecordAudit(ctx context.Context, rec ledger.AuditRecord) error
	RecordDraw(ctx context.Context, rec ledger.DrawRecord) error
}

// Service owns no state of its own; every read and write goes straight to
// the store, so concurrent handlers always observe committed snapshots.
type Service struct {
	store   Store
	guildID int64
	logger  *slog.Logger
}

func New(store Store, guildID int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, guildID: guildID, logger: logger}
}

// Grant adds amount entries to target and returns the new balance.
// Authorization and amount range checks belong to the caller.
func (s *Service) Grant(ctx context.Context, actorID, targetID, amount int64, reason string) (int64, error) {
	return s.mutate(ctx, actorID, targetID, amount, reason)
}

// Revoke removes amount entries from target, clamping at zero, and returns
// the new balance.
func (s *Service) Revoke(ctx context.Context, actorID, targetID, amount int64, reason string) (int64, error) {
	return s.mutate(ctx, actorID, targetID, -amount, reason)
}

// mutate applies the balance change first and appends the audit record
// second. The audit write is best effort: once the balance committed, an
// audit failure is logged and the mutation stands.
func (s *Service) mutate(ctx context.Context, actorID, targetID, delta int64, reason string) (int64, error) {
	newBalance, err := s.store.ApplyDelta(ctx, targetID, delta)
	if err != nil {
		return 0, err
	}

	s.audit(ctx, ledger.AuditRecord{
		GuildID:  s.guildID,
		ActorID:  actorID,
		TargetID: ledger.Target(targetID),
		Delta:    delta,
		Reason:   reason,
	})

	return newBalance, nil
}

func (s *Service) audit(ctx context.Context, rec ledger.AuditRecord) {
	if err := s.store.RecordAudit(ctx, rec); err != nil {
		s.logger.Warn("audit write failed",
			"actor", rec.ActorID, "delta", rec.Delta, "err", err)
	}
}

// Reset zeroes every balance, then stamps the reset epoch. The order is
// fixed: if the epoch write fails, balances are already reset rather than a
// fresh epoch pointing at stale balances.
func (s *Service) Reset(ctx context.Context, actorID int64) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}
	if err := s.store.SetLastReset(ctx, time.Now().UTC()); err != nil {
		return fmt.Errorf("stamp reset epoch: %w", err)
	}

	s.audit(ctx, ledger.AuditRecord{
		GuildID: s.guildID,
		ActorID: actorID,
		Delta:   0,
		Reason:  "monthly reset",
	})

	return nil
}

// Stats describes the current pool.
type Stats struct {
	TotalEntries int64
	Participants int64
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.store.TotalEntries(ctx)
	if err != nil {
		return Stats{}, err
	}
	participants, err := s.store.TotalParticipants(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalEntries: total, Participants: participants}, nil
}

// Odds reports userID's entries against the pool total. Percent is 0 when
// the user holds nothing or the pool is empty.
type Odds struct {
	Mine    int64
	Total   int64
	Percent float64
}

func (s *Service) Odds(ctx context.Context, userID int64) (Odds, error) {
	mine, err := s.store.Balance(ctx, userID)
	if err != nil {
		return Odds{}, err
	}
	total, err := s.store.TotalEntries(ctx)
	if err != nil {
		return Odds{}, err
	}

	o := Odds{Mine: mine, Total: total}
	if mine > 0 && total > 0 {
		o.Percent = float64(mine) / float64(total) * 100
	}
	return o, nil
}

func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.store.Balance(ctx, userID)
}

func (s *Service) Leaderboard(ctx context.Context, size int) ([]ledger.Entry, error) {
	return s.store.TopN(ctx, size)
}

func (s *Service) LastReset(ctx context.Context) (time.Time, error) {
	return s.store.LastReset(ctx)
}
