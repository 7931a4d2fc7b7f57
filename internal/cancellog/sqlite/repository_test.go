package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/cancellog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "cancellations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndLatest(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	entries := []*cancellog.Entry{
		{
			RequestID: "req_1",
			OrderID:   "ord_1",
			State:     cancellog.StateOpened,
			UpdatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			RequestID: "req_1",
			OrderID:   "ord_1",
			State:     cancellog.StateSubmitting,
			Reason:    "wrong size",
			TraceID:   "4bf92f3577b34da6a3ce929d0e0e4736",
			SpanID:    "00f067aa0ba902b7",
			UpdatedAt: time.Date(2026, 8, 1, 10, 0, 5, 0, time.UTC),
		},
		{
			RequestID:    "req_1",
			OrderID:      "ord_1",
			State:        cancellog.StateFailed,
			Reason:       "wrong size",
			ErrorMessage: "backend refused",
			UpdatedAt:    time.Date(2026, 8, 1, 10, 0, 6, 0, time.UTC),
		},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	latest, err := repo.Latest(ctx, "ord_1")
	require.NoError(t, err)

	assert.Equal(t, cancellog.StateFailed, latest.State)
	assert.Equal(t, "req_1", latest.RequestID)
	assert.Equal(t, "wrong size", latest.Reason)
	assert.Equal(t, "backend refused", latest.ErrorMessage)
	assert.True(t, latest.UpdatedAt.Equal(entries[2].UpdatedAt))
}

func TestLatestUnknownOrder(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.Latest(context.Background(), "ord_missing")
	assert.Error(t, err)
}
