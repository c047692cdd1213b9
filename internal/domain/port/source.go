package port

import (
	"context"

	"posture-monitor/internal/domain/entity"
)

// FrameSource источник кадров (камера). Открывается и закрывается вызывающим.
type FrameSource interface {
	// Read возвращает следующий кадр; вызывающий закрывает его
	Read(ctx context.Context) (Frame, error)
	// Close освобождает устройство
	Close() error
}

// FrameSink получатель размеченных кадров (поток MJPEG или окно)
type FrameSink interface {
	// Publish передаёт кадр дальше. entity.ErrStopRequested завершает цикл.
	Publish(ctx context.Context, frame Frame, alerts []entity.Alert, faceDetected bool) error
}
