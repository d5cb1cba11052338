package raffle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBulkDedupesByFirstOccurrence(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	// [A, B, A, C]: A gets the delta exactly once.
	results, err := svc.ApplyBulk(ctx, 1, []int64{100, 200, 100, 300}, 5, "raid night")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int64(100), results[0].UserID)
	assert.Equal(t, int64(200), results[1].UserID)
	assert.Equal(t, int64(300), results[2].UserID)

	amt, err := svc.Balance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), amt)
}

func TestApplyBulkNegativeDeltaClamps(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, 1, 100, 3, "")
	require.NoError(t, err)

	results, err := svc.ApplyBulk(ctx, 1, []int64{100, 200}, -10, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(0), results[0].NewBalance)
	assert.Equal(t, int64(0), results[1].NewBalance)
}

func TestApplyBulkEmptyTargets(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	results, err := svc.ApplyBulk(context.Background(), 1, nil, 5, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

// flakyStore fails ApplyDelta for one specific user.
type flakyStore struct {
	Store
	failOn int64
}

func (s *flakyStore) ApplyDelta(ctx context.Context, userID, delta int64) (int64, error) {
	if userID == s.failOn {
		return 0, errors.New("database is locked")
	}
	return s.Store.ApplyDelta(ctx, userID, delta)
}

func TestApplyBulkPartialFailureReportsPrefix(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	broken := New(&flakyStore{Store: store, failOn: 300}, testGuild,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	results, err := broken.ApplyBulk(ctx, 1, []int64{100, 200, 300, 400}, 5, "")
	require.Error(t, err)

	var bulkErr *PartialBulkError
	require.ErrorAs(t, err, &bulkErr)
	assert.Equal(t, int64(300), bulkErr.FailedID)
	require.Len(t, bulkErr.Applied, 2)
	assert.Equal(t, bulkErr.Applied, results)

	// The applied prefix is not rolled back; the tail was never touched.
	amt, err := svc.Balance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), amt)

	amt, err = svc.Balance(ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amt)
}
