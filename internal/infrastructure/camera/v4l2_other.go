//go:build !linux
// +build !linux

package camera

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"posture-monitor/internal/domain/port"
)

type V4L2Source struct{}

// OpenV4L2 доступен только в Linux.
func OpenV4L2(device string, width, height int, log logrus.FieldLogger) (*V4L2Source, error) {
	_ = device
	_ = width
	_ = height
	_ = log
	return nil, errors.New("v4l2 capture is only supported on linux")
}

func (s *V4L2Source) Read(ctx context.Context) (port.Frame, error) {
	_ = ctx
	return nil, errors.New("v4l2 capture is only supported on linux")
}

func (s *V4L2Source) Close() error {
	return nil
}

var _ port.FrameSource = (*V4L2Source)(nil)
