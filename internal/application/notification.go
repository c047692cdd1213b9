package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

type throttledNotifier struct {
	notifier port.AlertNotifier
	limiter  *rate.Limiter
}

// NotificationService рассылает предупреждения по каналам (звук, мессенджер).
// Доставка асинхронная, ошибки только логируются.
type NotificationService struct {
	log      logrus.FieldLogger
	metrics  port.Metrics
	channels []throttledNotifier
	wg       sync.WaitGroup
}

// NewNotificationService создаёт сервис; каждый канал срабатывает не чаще раза за cooldown.
// nil-каналы пропускаются.
func NewNotificationService(log logrus.FieldLogger, metrics port.Metrics, cooldown time.Duration, notifiers ...port.AlertNotifier) *NotificationService {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	limit := rate.Inf
	if cooldown > 0 {
		limit = rate.Every(cooldown)
	}

	s := &NotificationService{log: log, metrics: metrics}
	for _, n := range notifiers {
		if n == nil {
			continue
		}
		s.channels = append(s.channels, throttledNotifier{
			notifier: n,
			limiter:  rate.NewLimiter(limit, 1),
		})
	}
	return s
}

// Channels возвращает имена подключённых каналов
func (s *NotificationService) Channels() []string {
	names := make([]string, 0, len(s.channels))
	for _, ch := range s.channels {
		names = append(names, ch.notifier.Name())
	}
	return names
}

// Dispatch запускает доставку непустого списка предупреждений и сразу возвращается.
func (s *NotificationService) Dispatch(ctx context.Context, alerts []entity.Alert) {
	if len(alerts) == 0 {
		return
	}

	payload := make([]entity.Alert, len(alerts))
	copy(payload, alerts)

	for _, ch := range s.channels {
		if !ch.limiter.Allow() {
			continue
		}

		s.wg.Add(1)
		go func(n port.AlertNotifier) {
			defer s.wg.Done()

			err := n.Notify(ctx, payload)
			s.metrics.NotificationSent(n.Name(), err)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"channel": n.Name(),
					"error":   err.Error(),
				}).Warn("alert notification failed")
			}
		}(ch.notifier)
	}
}

// Wait дожидается завершения начатых доставок
func (s *NotificationService) Wait() {
	s.wg.Wait()
}
