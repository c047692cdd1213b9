package stream

import (
	"context"
	"time"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
	"posture-monitor/internal/infrastructure/vision"
)

// Sink кодирует размеченные кадры в JPEG и публикует их для MJPEG-потока.
type Sink struct {
	repo    port.SnapshotRepository
	quality int
	now     func() time.Time
}

// NewSink создаёт получателя кадров с заданным качеством JPEG.
func NewSink(repo port.SnapshotRepository, quality int) *Sink {
	return &Sink{
		repo:    repo,
		quality: quality,
		now:     time.Now,
	}
}

// Publish кодирует кадр и сохраняет его как последний снимок.
func (s *Sink) Publish(ctx context.Context, frame port.Frame, alerts []entity.Alert, faceDetected bool) error {
	data, err := vision.EncodeJPEG(frame, s.quality)
	if err != nil {
		return err
	}

	width, height := frame.Size()
	return s.repo.Save(ctx, &entity.Snapshot{
		JPEG:         data,
		ImageWidth:   width,
		ImageHeight:  height,
		FaceDetected: faceDetected,
		Alerts:       append([]entity.Alert(nil), alerts...),
		CapturedAt:   s.now(),
	})
}

var _ port.FrameSink = (*Sink)(nil)
