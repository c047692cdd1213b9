//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

type CascadeDetector struct {
	MinSize image.Point
	MaxSize image.Point
}

// NewCascadeDetector возвращает ошибку, если сборка без тега gocv.
func NewCascadeDetector(path string) (*CascadeDetector, error) {
	_ = path
	return nil, ErrGoCVDisabled
}

func (d *CascadeDetector) Path() string {
	return ""
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *CascadeDetector) Detect(ctx context.Context, gray port.GrayImage, params entity.DetectParams) ([]entity.BoundingBox, error) {
	_ = ctx
	_ = gray
	_ = params
	return nil, ErrGoCVDisabled
}

func (d *CascadeDetector) Close() error {
	return nil
}

var _ port.FaceDetector = (*CascadeDetector)(nil)
