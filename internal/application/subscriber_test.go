package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/infrastructure/storage"
)

func TestSubscriberService_SubscribeAndUnsubscribe(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriberService(repo)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateSubscribed, sub.State)

	sub, err = svc.Unsubscribe(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateUnsubscribed, sub.State)
}

func TestSubscriberService_Active(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriberService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, 2)
	require.NoError(t, err)
	_, err = svc.Unsubscribe(ctx, 2)
	require.NoError(t, err)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, int64(1), active[0].ChatID)
}
