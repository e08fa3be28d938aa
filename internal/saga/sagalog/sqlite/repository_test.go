package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/restaurant-orders/internal/saga/sagalog"
	"github.com/jcmexdev/restaurant-orders/internal/saga/sagalog/sqlite"
)

func openTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "saga.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_SaveAndGetLatest(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	started := &sagalog.SagaLog{
		SagaID:        "order-1",
		Status:        sagalog.StatusStarted,
		Payload:       `{"customer_id":"c1"}`,
		ErrorMessages: "[]",
		TraceID:       "0123456789abcdef0123456789abcdef",
		SpanID:        "0123456789abcdef",
		UpdatedAt:     time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, started))

	completed := &sagalog.SagaLog{
		SagaID:        "order-1",
		Status:        sagalog.StatusCompleted,
		ErrorMessages: "[]",
		UpdatedAt:     time.Date(2026, 8, 24, 10, 0, 1, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, completed))

	latest, err := repo.GetLatest(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", latest.SagaID)
	assert.Equal(t, sagalog.StatusCompleted, latest.Status)
	assert.Empty(t, latest.Payload, "payload is only written on the STARTED row")
	assert.Equal(t, completed.UpdatedAt, latest.UpdatedAt)
}

func TestRepository_GetLatest_Unknown(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetLatest(context.Background(), "no-such-saga")
	assert.Error(t, err)
}

func TestRepository_KeepsFailureDetails(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	failed := sagalog.NewEntry(ctx, "order-2", sagalog.StatusFailed, "charge payment", "",
		[]string{"step charge payment failed: card declined"})
	require.NoError(t, repo.Save(ctx, failed))

	latest, err := repo.GetLatest(ctx, "order-2")
	require.NoError(t, err)
	assert.Equal(t, sagalog.StatusFailed, latest.Status)
	assert.Equal(t, "charge payment", latest.CurrentStep)
	assert.Contains(t, latest.ErrorMessages, "card declined")
}
