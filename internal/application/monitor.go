package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

// Monitor общий цикл для потокового сервера и окна:
// кадр с камеры -> анализ -> разметка -> уведомления -> получатель.
type Monitor struct {
	analyzer      *PostureAnalyzer
	detector      port.FaceDetector
	source        port.FrameSource
	sink          port.FrameSink
	notifications *NotificationService
	metrics       port.Metrics
	log           logrus.FieldLogger
}

// NewMonitor собирает цикл мониторинга. notifications и metrics могут быть nil.
func NewMonitor(
	analyzer *PostureAnalyzer,
	detector port.FaceDetector,
	source port.FrameSource,
	sink port.FrameSink,
	notifications *NotificationService,
	metrics port.Metrics,
	log logrus.FieldLogger,
) *Monitor {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if notifications == nil {
		notifications = NewNotificationService(log, metrics, 0)
	}

	return &Monitor{
		analyzer:      analyzer,
		detector:      detector,
		source:        source,
		sink:          sink,
		notifications: notifications,
		metrics:       metrics,
		log:           log,
	}
}

// Run читает кадры до отмены контекста, ошибки источника или запроса остановки.
// Ошибка чтения кадра завершает цикл; сбои анализа пропускают только текущий кадр.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.notifications.Wait()

	for {
		if ctx.Err() != nil {
			return nil
		}

		frame, err := m.source.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "could not read frame")
		}

		stop := m.process(ctx, frame)
		if err := frame.Close(); err != nil {
			m.log.WithField("error", err.Error()).Debug("frame close failed")
		}
		if stop {
			m.log.Info("stop requested")
			return nil
		}
	}
}

// process обрабатывает один кадр и сообщает, нужно ли остановить цикл.
func (m *Monitor) process(ctx context.Context, frame port.Frame) bool {
	start := time.Now()

	result, err := m.analyzer.Analyze(ctx, frame, m.detector)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidFrame) {
			m.metrics.FrameSkipped("invalid_frame")
			m.log.WithField("error", err.Error()).Warn("skipping invalid frame")
			return false
		}
		m.metrics.FrameSkipped("detector_error")
		m.log.WithField("error", err.Error()).Error("face detection failed")
		return false
	}

	faceDetected := result.Face != nil
	m.metrics.ObserveFrame(time.Since(start), faceDetected)
	m.metrics.ObserveAlerts(result.Alerts)

	DrawAlerts(frame, result.Alerts)
	m.notifications.Dispatch(ctx, result.Alerts)

	if err := m.sink.Publish(ctx, frame, result.Alerts, faceDetected); err != nil {
		if errors.Is(err, entity.ErrStopRequested) {
			return true
		}
		m.metrics.FrameSkipped("sink_error")
		m.log.WithField("error", err.Error()).Error("publish frame failed")
	}

	return false
}
