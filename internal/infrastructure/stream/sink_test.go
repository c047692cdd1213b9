package stream

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/infrastructure/storage"
	"posture-monitor/internal/infrastructure/vision"
)

func TestSink_PublishStoresEncodedSnapshot(t *testing.T) {
	repo := storage.NewMemorySnapshotRepository()
	sink := NewSink(repo, 75)
	frame := vision.NewImageFrame(image.NewRGBA(image.Rect(0, 0, 32, 24)))
	alerts := []entity.Alert{entity.AlertMoveCloser}

	require.NoError(t, sink.Publish(context.Background(), frame, alerts, true))
	alerts[0] = entity.AlertMoveBack

	snap, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8}, snap.JPEG[:2])
	require.Equal(t, 32, snap.ImageWidth)
	require.Equal(t, 24, snap.ImageHeight)
	require.True(t, snap.FaceDetected)
	require.Equal(t, []entity.Alert{entity.AlertMoveCloser}, snap.Alerts)
	require.False(t, snap.CapturedAt.IsZero())
}
