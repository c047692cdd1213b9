package port

import (
	"time"

	"posture-monitor/internal/domain/entity"
)

// Metrics интерфейс сбора метрик цикла мониторинга
type Metrics interface {
	ObserveFrame(duration time.Duration, faceDetected bool)
	ObserveAlerts(alerts []entity.Alert)
	FrameSkipped(reason string)
	NotificationSent(channel string, err error)
}
