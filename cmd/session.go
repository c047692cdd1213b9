package main

import (
	"context"
	"io"
	"net"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"posture-monitor/config"
	"posture-monitor/internal/api"
	app "posture-monitor/internal/application"
	"posture-monitor/internal/container"
	"posture-monitor/internal/domain/port"
	"posture-monitor/internal/infrastructure/audio"
	"posture-monitor/internal/infrastructure/camera"
	"posture-monitor/internal/infrastructure/metrics"
	"posture-monitor/internal/infrastructure/storage"
	"posture-monitor/internal/infrastructure/stream"
	"posture-monitor/internal/infrastructure/vision"
	"posture-monitor/pkg/log"
)

const windowTitle = "Posture Monitor"

// session общие для обоих режимов ресурсы: камера, детектор, каналы оповещений
type session struct {
	cfg       *config.Config
	log       *logrus.Logger
	metrics   *metrics.Prometheus
	container *container.Container
	detector  *vision.CascadeDetector
	source    port.FrameSource
	player    *audio.Player
	bot       *api.Bot
	closers   []io.Closer
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := log.New(log.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	prom, err := metrics.NewPrometheus()
	if err != nil {
		return nil, err
	}

	rt := &session{
		cfg:     cfg,
		log:     logger,
		metrics: prom,
		container: container.New(
			storage.NewMemorySubscriberRepository(),
			storage.NewMemorySnapshotRepository(),
			prom,
			logger,
		),
	}

	detector, err := vision.NewCascadeDetector(cfg.CascadePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load face cascade")
	}
	rt.detector = detector
	rt.closers = append(rt.closers, detector)
	logger.WithField("cascade", detector.Path()).Info("face detector ready")

	source, err := openSource(cfg, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.source = source
	rt.closers = append(rt.closers, source)

	if cfg.AlertSound != "" {
		player, err := audio.NewPlayer(cfg.AlertSound, logger.WithField("component", "audio"))
		if err != nil {
			logger.WithField("error", err.Error()).Warn("audio alerts disabled")
		} else {
			rt.player = player
			rt.closers = append(rt.closers, player)
		}
	}

	if cfg.TelegramToken != "" {
		bot, err := api.NewBot(cfg.TelegramToken, rt.container.Subscribers, rt.container.Snapshots, logger.WithField("component", "telegram"))
		if err != nil {
			logger.WithField("error", err.Error()).Warn("telegram alerts disabled")
		} else {
			rt.bot = bot
		}
	}

	return rt, nil
}

func openSource(cfg *config.Config, logger logrus.FieldLogger) (port.FrameSource, error) {
	fields := logrus.Fields{"backend": cfg.CameraBackend, "device": cfg.CameraDevice}

	switch cfg.CameraBackend {
	case config.BackendV4L2:
		src, err := camera.OpenV4L2(cfg.CameraDevice, cfg.CameraWidth, cfg.CameraHeight, logger)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open camera")
		}
		logger.WithFields(fields).Info("camera opened")
		return src, nil
	default:
		src, err := camera.OpenCapture(cfg.CameraDevice, cfg.CameraWidth, cfg.CameraHeight)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open camera")
		}
		logger.WithFields(fields).Info("camera opened")
		return src, nil
	}
}

// notifications собирает рассылку по подключённым каналам
func (rt *session) notifications() *app.NotificationService {
	var notifiers []port.AlertNotifier
	if rt.player != nil {
		notifiers = append(notifiers, rt.player)
	}
	if rt.bot != nil {
		notifiers = append(notifiers, rt.bot)
	}
	svc := rt.container.Notifications(rt.cfg.AlertCooldown, notifiers...)
	rt.log.WithField("channels", svc.Channels()).Info("notification channels")
	return svc
}

// startBot запускает бота в группе и подписывает чат из конфигурации
func (rt *session) startBot(ctx context.Context, g *errgroup.Group) {
	if rt.bot == nil {
		return
	}
	if rt.cfg.TelegramChatID != 0 {
		if _, err := rt.container.Subscribers.Subscribe(ctx, rt.cfg.TelegramChatID); err != nil {
			rt.log.WithField("error", err.Error()).Warn("failed to subscribe configured chat")
		}
	}
	g.Go(func() error {
		return rt.bot.Run(ctx)
	})
}

// Serve публикует размеченный поток по HTTP
func (rt *session) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := api.NewServer(rt.cfg.HTTPAddr, rt.container.Snapshots, rt.metrics.Handler(), rt.log.WithField("component", "http"))
	sink := stream.NewSink(rt.container.Snapshots, rt.cfg.JPEGQuality)
	monitor := rt.container.Monitor(rt.detector, rt.source, sink, rt.notifications())

	g, ctx := errgroup.WithContext(ctx)
	rt.startBot(ctx, g)

	g.Go(func() error {
		return server.Run(ctx, func(addr net.Addr) {
			if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
				rt.log.WithField("error", err.Error()).Debug("systemd notify failed")
			}
		})
	})

	g.Go(func() error {
		// Остановка камеры завершает и остальные компоненты
		defer cancel()
		return monitor.Run(ctx)
	})

	err := g.Wait()
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	return err
}

// Display показывает размеченный поток в окне. Цикл идёт в текущей горутине: окну OpenCV нужен главный поток.
func (rt *session) Display(ctx context.Context) error {
	window, err := vision.NewWindow(windowTitle)
	if err != nil {
		return errors.Wrap(err, "failed to open window")
	}
	defer window.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	rt.startBot(gctx, g)

	monitor := rt.container.Monitor(rt.detector, rt.source, window, rt.notifications())
	runErr := monitor.Run(ctx)

	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Close освобождает ресурсы в обратном порядке
func (rt *session) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			rt.log.WithField("error", err.Error()).Warn("close failed")
		}
	}
	rt.closers = nil
}
