package app

import (
	"context"
	"image/color"

	"github.com/pkg/errors"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

var (
	faceColor   = color.RGBA{G: 255, A: 255}
	markerColor = color.RGBA{R: 255, A: 255}
)

const (
	faceThickness = 2
	markerRadius  = 5
)

// PostureAnalyzer оценивает положение лица в одном кадре.
// Не хранит состояния между вызовами.
type PostureAnalyzer struct {
	thresholds entity.Thresholds
	params     entity.DetectParams
}

// AnalysisResult содержит размеченный кадр и предупреждения в порядке проверок.
type AnalysisResult struct {
	Frame  port.Frame
	Face   *entity.BoundingBox // nil, если лицо не найдено
	Alerts []entity.Alert
}

// HasAlerts сообщает, сработала ли хотя бы одна проверка
func (r *AnalysisResult) HasAlerts() bool {
	return len(r.Alerts) > 0
}

// NewPostureAnalyzer создаёт анализатор с заданными порогами и параметрами детектора.
func NewPostureAnalyzer(thresholds entity.Thresholds, params entity.DetectParams) *PostureAnalyzer {
	return &PostureAnalyzer{
		thresholds: thresholds,
		params:     params,
	}
}

// NewDefaultPostureAnalyzer создаёт анализатор со стандартными порогами.
func NewDefaultPostureAnalyzer() *PostureAnalyzer {
	return NewPostureAnalyzer(entity.DefaultThresholds(), entity.DefaultDetectParams())
}

// Analyze находит лицо, проверяет осанку и размечает кадр на месте.
// Ошибка детектора возвращается без изменений.
func (a *PostureAnalyzer) Analyze(ctx context.Context, frame port.Frame, detector port.FaceDetector) (*AnalysisResult, error) {
	if frame == nil {
		return nil, errors.Wrap(entity.ErrInvalidFrame, "nil frame")
	}

	width, height := frame.Size()
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(entity.ErrInvalidFrame, "frame size %dx%d", width, height)
	}

	if detector == nil {
		return nil, errors.New("detector is not configured")
	}

	gray, err := frame.Grayscale()
	if err != nil {
		return nil, errors.Wrap(err, "grayscale")
	}

	faces, err := detector.Detect(ctx, gray, a.params)
	gray.Close()
	if err != nil {
		return nil, err
	}

	if len(faces) == 0 {
		return &AnalysisResult{Frame: frame, Alerts: []entity.Alert{}}, nil
	}

	// Берём первое лицо в порядке детектора, без ранжирования.
	face := faces[0]
	alerts := a.thresholds.Evaluate(width, height, face)

	// Разметка после всех проверок и независимо от их результата.
	frame.Rectangle(face.Rect(), faceColor, faceThickness)
	frame.Circle(entity.FrameCenter(width, height), markerRadius, markerColor, -1)

	return &AnalysisResult{Frame: frame, Face: &face, Alerts: alerts}, nil
}
