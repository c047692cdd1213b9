//go:build gocv
// +build gocv

package camera

import (
	"context"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
	"posture-monitor/internal/infrastructure/vision"
)

// maxEmptyReads сколько пустых кадров подряд допускается до ошибки
const maxEmptyReads = 30

// Capture источник кадров через OpenCV VideoCapture.
type Capture struct {
	device string
	cap    *gocv.VideoCapture
}

// OpenCapture открывает камеру по индексу ("0") или пути/URL.
func OpenCapture(device string, width, height int) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening video capture device %s", device)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, errors.Errorf("could not open camera %s", device)
	}

	if width > 0 && height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	return &Capture{device: device, cap: vc}, nil
}

// Read возвращает следующий кадр камеры.
func (c *Capture) Read(ctx context.Context) (port.Frame, error) {
	for i := 0; i < maxEmptyReads; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mat := gocv.NewMat()
		if ok := c.cap.Read(&mat); !ok {
			mat.Close()
			return nil, errors.Wrapf(entity.ErrSourceClosed, "cannot read device %s", c.device)
		}
		if mat.Empty() {
			mat.Close()
			continue
		}
		return vision.NewMatFrame(mat), nil
	}

	return nil, errors.Wrapf(entity.ErrSourceClosed, "device %s returns empty frames", c.device)
}

// Close освобождает камеру
func (c *Capture) Close() error {
	return c.cap.Close()
}

var _ port.FrameSource = (*Capture)(nil)
