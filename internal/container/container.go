package container

import (
	"time"

	"github.com/sirupsen/logrus"

	app "posture-monitor/internal/application"
	"posture-monitor/internal/domain/port"
)

// Container собирает сервисы приложения вокруг общих хранилищ
type Container struct {
	Analyzer    *app.PostureAnalyzer
	Subscribers *app.SubscriberService
	Snapshots   port.SnapshotRepository
	Metrics     port.Metrics
	Log         logrus.FieldLogger
}

func New(subscriberRepo port.SubscriberRepository, snapshots port.SnapshotRepository, metrics port.Metrics, log logrus.FieldLogger) *Container {
	return &Container{
		Analyzer:    app.NewDefaultPostureAnalyzer(),
		Subscribers: app.NewSubscriberService(subscriberRepo),
		Snapshots:   snapshots,
		Metrics:     metrics,
		Log:         log,
	}
}

// Notifications создаёт рассылку по переданным каналам; nil-каналы пропускаются
func (c *Container) Notifications(cooldown time.Duration, notifiers ...port.AlertNotifier) *app.NotificationService {
	return app.NewNotificationService(c.Log.WithField("component", "notifications"), c.Metrics, cooldown, notifiers...)
}

// Monitor собирает цикл мониторинга для конкретного источника и получателя кадров
func (c *Container) Monitor(detector port.FaceDetector, source port.FrameSource, sink port.FrameSink, notifications *app.NotificationService) *app.Monitor {
	return app.NewMonitor(c.Analyzer, detector, source, sink, notifications, c.Metrics, c.Log.WithField("component", "monitor"))
}
