//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

type Window struct{}

// NewWindow возвращает ошибку, если сборка без тега gocv.
func NewWindow(title string) (*Window, error) {
	_ = title
	return nil, ErrGoCVDisabled
}

// Publish возвращает ошибку, если сборка без тега gocv.
func (w *Window) Publish(ctx context.Context, frame port.Frame, alerts []entity.Alert, faceDetected bool) error {
	_ = ctx
	_ = frame
	_ = alerts
	_ = faceDetected
	return ErrGoCVDisabled
}

func (w *Window) Close() error {
	return nil
}

var _ port.FrameSink = (*Window)(nil)
