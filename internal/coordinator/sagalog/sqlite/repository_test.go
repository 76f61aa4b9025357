package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeshop/ecommerce-orders/internal/coordinator/sagalog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "sagas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndGetLatest(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	entries := []*sagalog.SagaLog{
		{SagaID: "ORD-1", Status: sagalog.StatusStarted, Payload: `{"reference":"ORD-1"}`, ErrorMessages: "[]", UpdatedAt: base},
		{SagaID: "ORD-1", Status: sagalog.StatusStepDone, CurrentStep: "charge-payment", ErrorMessages: "[]", UpdatedAt: base.Add(time.Second)},
		{SagaID: "ORD-1", Status: sagalog.StatusCompleted, ErrorMessages: "[]", UpdatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	latest, err := repo.GetLatest(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, sagalog.StatusCompleted, latest.Status)
	assert.True(t, latest.UpdatedAt.Equal(base.Add(2*time.Second)))
}

func TestGetLatestUnknownSaga(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetLatest(context.Background(), "nope")
	assert.Error(t, err)
}

func TestAppendOnlyKeepsHistory(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Save(ctx, &sagalog.SagaLog{
		SagaID: "ORD-2", Status: sagalog.StatusStarted, ErrorMessages: "[]", UpdatedAt: now,
	}))
	require.NoError(t, repo.Save(ctx, &sagalog.SagaLog{
		SagaID: "ORD-2", Status: sagalog.StatusFailed, CurrentStep: "charge-payment",
		ErrorMessages: `["charge-payment: declined"]`, UpdatedAt: now.Add(time.Millisecond),
	}))

	latest, err := repo.GetLatest(ctx, "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, sagalog.StatusFailed, latest.Status)
	assert.Equal(t, "charge-payment", latest.CurrentStep)
	assert.Contains(t, latest.ErrorMessages, "declined")
}
