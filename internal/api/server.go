package api

import (
	"context"
	_ "embed"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

const (
	frameBoundary   = "frame"
	shutdownTimeout = 5 * time.Second
)

//go:embed index.html
var indexPage []byte

// Server отдаёт размеченный поток камеры в браузер
type Server struct {
	echo      *echo.Echo
	addr      string
	snapshots port.SnapshotRepository
	log       logrus.FieldLogger
}

type statusResponse struct {
	Sequence     uint64    `json:"sequence"`
	FaceDetected bool      `json:"face_detected"`
	Alerts       []string  `json:"alerts"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CapturedAt   time.Time `json:"captured_at"`
}

// NewServer создаёт HTTP-сервер. metrics может быть nil, тогда /metrics не регистрируется.
func NewServer(addr string, snapshots port.SnapshotRepository, metrics http.Handler, log logrus.FieldLogger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		addr:      addr,
		snapshots: snapshots,
		log:       log,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"ip":      v.RemoteIP,
				"latency": v.Latency,
			})
			if v.Error != nil {
				entry.WithField("error", v.Error.Error()).Warn("request failed")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	}))

	e.GET("/", s.index)
	e.GET("/video_feed", s.videoFeed)
	e.GET("/status", s.status)
	e.GET("/healthz", s.health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	return s
}

// Handler для тестов и встраивания
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run слушает адрес до отмены контекста. ready вызывается, когда порт уже открыт.
func (s *Server) Run(ctx context.Context, ready func(addr net.Addr)) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.addr)
	}
	s.echo.Listener = ln

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start("")
	}()

	s.log.WithField("addr", ln.Addr().String()).Info("http server started")
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}
	<-errCh

	s.log.Info("http server stopped")
	return nil
}

func (s *Server) index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexPage)
}

// videoFeed бесконечный multipart-ответ: каждый новый снимок отдельной частью
func (s *Server) videoFeed(c echo.Context) error {
	ctx := c.Request().Context()

	frames, unsubscribe := s.snapshots.Subscribe(ctx)
	defer unsubscribe()

	res := c.Response()
	mw := multipart.NewWriter(res)
	if err := mw.SetBoundary(frameBoundary); err != nil {
		return err
	}

	res.Header().Set(echo.HeaderContentType, "multipart/x-mixed-replace; boundary="+frameBoundary)
	res.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	res.Header().Set("Connection", "close")
	res.WriteHeader(http.StatusOK)

	var last uint64
	if snap, err := s.snapshots.Latest(ctx); err == nil {
		if err := writeFrame(res, mw, snap); err != nil {
			return nil
		}
		last = snap.Sequence
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-frames:
			if !ok {
				return nil
			}
			if snap.Sequence <= last {
				continue
			}
			if err := writeFrame(res, mw, snap); err != nil {
				s.log.WithField("error", err.Error()).Debug("video feed client gone")
				return nil
			}
			last = snap.Sequence
		}
	}
}

func writeFrame(res *echo.Response, mw *multipart.Writer, snap *entity.Snapshot) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", "image/jpeg")
	header.Set("Content-Length", strconv.Itoa(len(snap.JPEG)))

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(snap.JPEG); err != nil {
		return err
	}
	res.Flush()
	return nil
}

func (s *Server) status(c echo.Context) error {
	snap, err := s.snapshots.Latest(c.Request().Context())
	if errors.Is(err, entity.ErrNoSnapshot) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no frame captured yet"})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{
		Sequence:     snap.Sequence,
		FaceDetected: snap.FaceDetected,
		Alerts:       entity.AlertStrings(snap.Alerts),
		Width:        snap.ImageWidth,
		Height:       snap.ImageHeight,
		CapturedAt:   snap.CapturedAt,
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
