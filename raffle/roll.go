package raffle

import (
	"context"

	"github.com/rustyeddy/raffle/draw"
	"github.com/rustyeddy/raffle/ledger"
	"github.com/rustyeddy/raffle/pkg/id"
)

// Outcome is the fixed result of one winner roll. Pool is the population
// the draw ran over, handed back so the caller can run the cosmetic reveal
// against the same entries.
type Outcome struct {
	DrawID       string
	WinnerID     int64
	TotalEntries int64
	Participants int64
	Pool         []ledger.Entry
}

// Roll draws one winner weighted by current balances. The outcome is fixed
// here, before any reveal runs, and persisted as a draw record (best
// effort, like the audit trail). An empty pool surfaces draw.ErrEmptyPool.
func (s *Service) Roll(ctx context.Context, actorID int64) (Outcome, error) {
	pool, err := s.store.AllPositive(ctx)
	if err != nil {
		return Outcome{}, err
	}

	winner, err := draw.Winner(pool)
	if err != nil {
		return Outcome{}, err
	}

	var total int64
	for _, e := range pool {
		total += e.Amount
	}

	out := Outcome{
		DrawID:       id.New(),
		WinnerID:     winner,
		TotalEntries: total,
		Participants: int64(len(pool)),
		Pool:         pool,
	}

	if err := s.store.RecordDraw(ctx, ledger.DrawRecord{
		ID:           out.DrawID,
		WinnerID:     out.WinnerID,
		TotalEntries: out.TotalEntries,
		Participants: out.Participants,
	}); err != nil {
		s.logger.Warn("draw record write failed", "draw", out.DrawID, "err", err)
	}

	return out, nil
}
