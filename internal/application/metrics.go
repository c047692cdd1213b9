package app

import (
	"time"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

type noopMetrics struct{}

func (noopMetrics) ObserveFrame(time.Duration, bool) {}
func (noopMetrics) ObserveAlerts([]entity.Alert) {}
func (noopMetrics) FrameSkipped(string) {}
func (noopMetrics) NotificationSent(string, error) {}

var _ port.Metrics = noopMetrics{}
