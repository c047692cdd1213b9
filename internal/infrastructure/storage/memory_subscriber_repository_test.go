package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"posture-monitor/internal/domain/entity"
)

func TestMemorySubscriberRepository_GetCreatesSubscribed(t *testing.T) {
	repo := NewMemorySubscriberRepository()

	sub, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, entity.StateSubscribed, sub.State)
}

func TestMemorySubscriberRepository_ChangesNeedSave(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	sub, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	sub.SetState(entity.StateUnsubscribed)

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateSubscribed, stored.State)

	require.NoError(t, repo.Save(ctx, sub))
	stored, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateUnsubscribed, stored.State)
}

func TestMemorySubscriberRepository_ListSorted(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	for _, id := range []int64{30, 10, 20} {
		_, err := repo.Get(ctx, id)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, int64(10), list[0].ChatID)
	require.Equal(t, int64(30), list[2].ChatID)
}
