package draw

import (
	"context"
	"time"

	"github.com/rustyeddy/raffle/ledger"
)

// Reveal emits steps cosmetic candidates at delay intervals, each
// independently resampled from the same weighted population. The channel is
// closed after the last candidate, or early when ctx is cancelled.
//
// The sequence is presentation only: the real winner is fixed before Reveal
// is called and nothing emitted here derives from or alters it.
func Reveal(ctx context.Context, entries []ledger.Entry, steps int, delay time.Duration) <-chan int64 {
	out := make(chan int64)

	go func() {
		defer close(out)

		r := newRand()
		for i := 0; i < steps; i++ {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			candidate, err := pick(r, entries)
			if err != nil {
				return
			}

			select {
			case out <- candidate:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
