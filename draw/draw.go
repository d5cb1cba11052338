// Package draw selects a raffle winner with probability proportional to
// entries held, and produces the cosmetic "spinning wheel" candidate
// sequence shown before the winner is revealed.
package draw

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand"
	"time"

	"github.com/rustyeddy/raffle/ledger"
)

// ErrEmptyPool is returned when a draw is attempted with no positive
// balances in the population.
var ErrEmptyPool = errors.New("draw: no entries in pool")

// Winner picks one user from entries, where a balance of N gives that user
// N/total odds. Each call draws from a fresh crypto-seeded generator, so
// outcomes are never caller-seeded or reused.
func Winner(entries []ledger.Entry) (int64, error) {
	return pick(newRand(), entries)
}

// pick walks the cumulative weights against one random point in [0, total).
// No flattened population is built, so a pool with large balances costs the
// same as a small one.
func pick(r *rand.Rand, entries []ledger.Entry) (int64, error) {
	var total int64
	for _, e := range entries {
		if e.Amount > 0 {
			total += e.Amount
		}
	}
	if total <= 0 {
		return 0, ErrEmptyPool
	}

	n := r.Int63n(total)
	for _, e := range entries {
		if e.Amount <= 0 {
			continue
		}
		n -= e.Amount
		if n < 0 {
			return e.UserID, nil
		}
	}

	// total > 0 guarantees the walk terminates above.
	return 0, ErrEmptyPool
}

// newRand seeds a PRNG from crypto/rand so draws are not trivially
// predictable, without paying crypto cost per sample.
func newRand() *rand.Rand {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
