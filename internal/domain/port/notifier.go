package port

import (
	"context"

	"posture-monitor/internal/domain/entity"
)

// AlertNotifier интерфейс доставки предупреждений (звук, мессенджер)
type AlertNotifier interface {
	// Name возвращает имя канала для логов и метрик
	Name() string

	// Notify доставляет непустой список предупреждений
	Notify(ctx context.Context, alerts []entity.Alert) error
}
