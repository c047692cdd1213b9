//go:build linux
// +build linux

package camera

import (
	"context"
	"strconv"

	"github.com/blackjack/webcam"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
	"posture-monitor/internal/infrastructure/vision"
)

// pixelFormatMJPEG FourCC "MJPG"
const pixelFormatMJPEG webcam.PixelFormat = 0x47504A4D

// waitTimeoutSeconds время ожидания кадра, после которого проверяется контекст
const waitTimeoutSeconds = 1

type frameReader interface {
	WaitForFrame(timeout uint32) error
	ReadFrame() ([]byte, error)
	Close() error
}

// V4L2Source читает MJPEG-кадры напрямую из устройства V4L2, без OpenCV.
type V4L2Source struct {
	device string
	cam    frameReader
	log    logrus.FieldLogger
}

// OpenV4L2 открывает устройство (например /dev/video0) в режиме MJPEG и запускает поток.
func OpenV4L2(device string, width, height int, log logrus.FieldLogger) (*V4L2Source, error) {
	device = devicePath(device)

	cam, err := webcam.Open(device)
	if err != nil {
		return nil, errors.Wrap(err, "can not open device")
	}

	if _, ok := cam.GetSupportedFormats()[pixelFormatMJPEG]; !ok {
		cam.Close()
		return nil, errors.Errorf("device %s does not support MJPEG", device)
	}

	_, w, h, err := cam.SetImageFormat(pixelFormatMJPEG, uint32(width), uint32(height))
	if err != nil {
		cam.Close()
		return nil, errors.Wrap(err, "can not set image format")
	}

	if err := cam.StartStreaming(); err != nil {
		cam.Close()
		return nil, errors.Wrap(err, "can not start streaming")
	}

	log.WithFields(logrus.Fields{
		"device": device,
		"width":  w,
		"height": h,
	}).Info("v4l2 streaming started")

	return newV4L2Source(device, cam, log), nil
}

// devicePath переводит индекс камеры ("0") в путь устройства
func devicePath(device string) string {
	if _, err := strconv.Atoi(device); err == nil {
		return "/dev/video" + device
	}
	return device
}

func newV4L2Source(device string, cam frameReader, log logrus.FieldLogger) *V4L2Source {
	return &V4L2Source{device: device, cam: cam, log: log}
}

// Read ждёт следующий кадр и декодирует его. Битые кадры MJPEG пропускаются.
func (s *V4L2Source) Read(ctx context.Context) (port.Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := s.cam.WaitForFrame(waitTimeoutSeconds)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			continue
		default:
			return nil, errors.Wrapf(entity.ErrSourceClosed, "frame wait failed on %s: %v", s.device, err)
		}

		data, err := s.cam.ReadFrame()
		if err != nil {
			return nil, errors.Wrapf(entity.ErrSourceClosed, "read frame failed on %s: %v", s.device, err)
		}
		if len(data) == 0 {
			continue
		}

		// Буфер принадлежит драйверу и будет переиспользован.
		frame, err := vision.DecodeFrame(append([]byte(nil), data...))
		if err != nil {
			s.log.WithField("error", err.Error()).Debug("skipping corrupted mjpeg frame")
			continue
		}
		return frame, nil
	}
}

// Close останавливает поток и закрывает устройство
func (s *V4L2Source) Close() error {
	return s.cam.Close()
}

var _ port.FrameSource = (*V4L2Source)(nil)
