package raffle

import (
	"context"
	"fmt"

	"github.com/rustyeddy/raffle/ledger"
)

// BulkResult is one applied mutation within a bulk operation.
type BulkResult struct {
	UserID     int64
	NewBalance int64
}

// PartialBulkError reports a bulk operation that aborted partway. Applied
// holds the prefix of targets whose balance changes committed; those are
// not rolled back.
type PartialBulkError struct {
	Applied  []BulkResult
	FailedID int64
	Err      error
}

func (e *PartialBulkError) Error() string {
	return fmt.Sprintf("bulk mutation aborted at user %d after %d applied: %v",
		e.FailedID, len(e.Applied), e.Err)
}

func (e *PartialBulkError) Unwrap() error { return e.Err }

// ApplyBulk applies delta to each target in order, deduplicating the list
// by first occurrence (later duplicates are dropped silently). Targets are
// processed one at a time; on a store failure the remaining targets are
// skipped and the applied prefix is returned inside *PartialBulkError.
func (s *Service) ApplyBulk(ctx context.Context, actorID int64, targets []int64, delta int64, reason string) ([]BulkResult, error) {
	unique := dedupe(targets)

	applied := make([]BulkResult, 0, len(unique))
	for _, target := range unique {
		newBalance, err := s.store.ApplyDelta(ctx, target, delta)
		if err != nil {
			return applied, &PartialBulkError{Applied: applied, FailedID: target, Err: err}
		}

		s.audit(ctx, ledger.AuditRecord{
			GuildID:  s.guildID,
			ActorID:  actorID,
			TargetID: ledger.Target(target),
			Delta:    delta,
			Reason:   reason,
		})

		applied = append(applied, BulkResult{UserID: target, NewBalance: newBalance})
	}

	return applied, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
