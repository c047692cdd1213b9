//go:build gocv
// +build gocv

package vision

import (
	"context"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

// Window показывает размеченные кадры в окне OpenCV. Клавиша q завершает просмотр.
type Window struct {
	window *gocv.Window
}

// NewWindow открывает окно с заголовком title.
func NewWindow(title string) (*Window, error) {
	return &Window{window: gocv.NewWindow(title)}, nil
}

// Publish выводит кадр и опрашивает клавиатуру.
func (w *Window) Publish(ctx context.Context, frame port.Frame, alerts []entity.Alert, faceDetected bool) error {
	_ = ctx
	_ = alerts
	_ = faceDetected

	switch f := frame.(type) {
	case *MatFrame:
		w.window.IMShow(*f.Mat())
	default:
		img, err := frame.Image()
		if err != nil {
			return errors.Wrap(err, "frame to image")
		}
		mat, err := gocv.ImageToMatRGB(img)
		if err != nil {
			return errors.Wrap(err, "image to mat")
		}
		defer mat.Close()
		w.window.IMShow(mat)
	}

	if w.window.WaitKey(1)&0xFF == 'q' {
		return entity.ErrStopRequested
	}
	return nil
}

// Close закрывает окно
func (w *Window) Close() error {
	return w.window.Close()
}

var _ port.FrameSink = (*Window)(nil)
