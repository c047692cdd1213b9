//go:build !gocv
// +build !gocv

package camera

import (
	"context"

	"posture-monitor/internal/domain/port"
	"posture-monitor/internal/infrastructure/vision"
)

type Capture struct{}

// OpenCapture возвращает ошибку, если сборка без тега gocv.
func OpenCapture(device string, width, height int) (*Capture, error) {
	_ = device
	_ = width
	_ = height
	return nil, vision.ErrGoCVDisabled
}

// Read возвращает ошибку, если сборка без тега gocv.
func (c *Capture) Read(ctx context.Context) (port.Frame, error) {
	_ = ctx
	return nil, vision.ErrGoCVDisabled
}

func (c *Capture) Close() error {
	return nil
}

var _ port.FrameSource = (*Capture)(nil)
