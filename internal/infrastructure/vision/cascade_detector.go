//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

// CascadeDetector детектор лиц на каскаде Хаара.
type CascadeDetector struct {
	MinSize image.Point // минимальный размер лица, нулевой значит без ограничения
	MaxSize image.Point // максимальный размер лица, нулевой значит без ограничения

	classifier gocv.CascadeClassifier
	path       string
}

// NewCascadeDetector загружает каскад из path, а при неудаче из системных каталогов OpenCV.
func NewCascadeDetector(path string) (*CascadeDetector, error) {
	classifier := gocv.NewCascadeClassifier()

	for _, candidate := range cascadeCandidates(path) {
		if classifier.Load(candidate) {
			return &CascadeDetector{
				MinSize:    image.Pt(30, 30),
				classifier: classifier,
				path:       candidate,
			}, nil
		}
	}

	classifier.Close()
	return nil, errors.Errorf("failed to load face cascade classifier from %s or alternative paths", path)
}

// Path возвращает путь, из которого загружен каскад
func (d *CascadeDetector) Path() string {
	return d.path
}

// Detect ищет лица на сером изображении.
func (d *CascadeDetector) Detect(ctx context.Context, gray port.GrayImage, params entity.DetectParams) ([]entity.BoundingBox, error) {
	_ = ctx

	var mat gocv.Mat
	switch g := gray.(type) {
	case *MatGray:
		mat = g.mat
	case *ImageGray:
		converted, err := gocv.ImageGrayToMatGray(g.Gray)
		if err != nil {
			return nil, errors.Wrap(err, "convert gray image")
		}
		defer converted.Close()
		mat = converted
	default:
		return nil, errors.Errorf("unsupported gray image %T", gray)
	}

	if mat.Empty() {
		return nil, errors.Wrap(entity.ErrInvalidFrame, "empty gray image")
	}

	rects := d.classifier.DetectMultiScaleWithParams(mat, params.ScaleFactor, params.MinNeighbors, 0, d.MinSize, d.MaxSize)

	boxes := make([]entity.BoundingBox, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, entity.BoxFromRect(r))
	}
	return boxes, nil
}

// Close освобождает каскад
func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}

var _ port.FaceDetector = (*CascadeDetector)(nil)
