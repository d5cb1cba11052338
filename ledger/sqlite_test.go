package ledger

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "raffle.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	_, path := newTestStore(t)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('tickets','meta','ticket_log','draws')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["tickets"])
	assert.True(t, found["meta"])
	assert.True(t, found["ticket_log"])
	assert.True(t, found["draws"])
}

func TestApplyDeltaCreatesEntry(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	amt, err := s.ApplyDelta(ctx, 42, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), amt)

	amt, err = s.Balance(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(5), amt)
}

func TestApplyDeltaClampedRunningSum(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	// next = max(0, prev + delta) at every step.
	deltas := []int64{3, -10, 7, 0, -2, -2, 4}
	want := []int64{3, 0, 7, 7, 5, 3, 7}

	for i, d := range deltas {
		amt, err := s.ApplyDelta(ctx, 7, d)
		require.NoError(t, err)
		assert.Equal(t, want[i], amt, "step %d delta %d", i, d)
	}
}

func TestApplyDeltaNegativeOnMissingUser(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	amt, err := s.ApplyDelta(context.Background(), 99, -50)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amt)
}

func TestApplyDeltaOverRemovalClampsToZero(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.ApplyDelta(ctx, 1, 10)
	require.NoError(t, err)

	amt, err := s.ApplyDelta(ctx, 1, -999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amt)
}

func TestApplyDeltaConcurrentSameUser(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 4
	const perWorker = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := s.ApplyDelta(ctx, 5, 1); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	amt, err := s.Balance(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), amt)
}

func TestResetAllZeroesButKeepsRows(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.ApplyDelta(ctx, 1, 10)
	require.NoError(t, err)
	_, err = s.ApplyDelta(ctx, 2, 3)
	require.NoError(t, err)

	require.NoError(t, s.ResetAll(ctx))

	for _, id := range []int64{1, 2} {
		amt, err := s.Balance(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), amt)
	}

	// Rows survive the reset.
	var count int64
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM tickets").Scan(&count))
	assert.Equal(t, int64(2), count)
}

func TestLastResetSeededOnFirstOpen(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	last, err := s.LastReset(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), last, time.Minute)
}

func TestSetLastResetRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	stamp := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, s.SetLastReset(ctx, stamp))

	last, err := s.LastReset(ctx)
	require.NoError(t, err)
	assert.True(t, last.Equal(stamp))
}

func TestLastResetSelfHealsOnMissingRow(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec("DELETE FROM meta WHERE key = ?", metaLastReset)
	require.NoError(t, err)

	last, err := s.LastReset(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), last, time.Minute)
}

func TestEpochSurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "raffle.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	stamp := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.SetLastReset(context.Background(), stamp))
	require.NoError(t, s.Close())

	s2, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	// Re-open must not clobber the stored epoch with a fresh seed.
	last, err := s2.LastReset(context.Background())
	require.NoError(t, err)
	assert.True(t, last.Equal(stamp))
}
