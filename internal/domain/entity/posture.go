package entity

import "image"

// DetectParams параметры детектора лиц, которые задаёт анализатор
type DetectParams struct {
	ScaleFactor  float64 // шаг масштабирования пирамиды
	MinNeighbors int     // минимальное число соседних срабатываний
}

// DefaultDetectParams параметры каскада по умолчанию.
func DefaultDetectParams() DetectParams {
	return DetectParams{ScaleFactor: 1.3, MinNeighbors: 5}
}

// Thresholds пороги геометрических проверок осанки.
// Доли считаются от размеров кадра, сравнения строгие.
type Thresholds struct {
	CenterTolerance  float64 // допустимое смещение центра лица, доля ширины/высоты
	MinFaceAreaRatio float64 // меньше этой доли площади кадра: слишком далеко
	MaxFaceAreaRatio float64 // больше этой доли: слишком близко
	MinAspectRatio   float64 // нижняя граница w/h
	MaxAspectRatio   float64 // верхняя граница w/h
}

// DefaultThresholds возвращает стандартные пороги.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CenterTolerance:  0.2,
		MinFaceAreaRatio: 0.1,
		MaxFaceAreaRatio: 0.3,
		MinAspectRatio:   0.7,
		MaxAspectRatio:   1.3,
	}
}

// FrameCenter возвращает центр кадра (целочисленное деление)
func FrameCenter(width, height int) image.Point {
	return image.Pt(width/2, height/2)
}

// Evaluate проверяет положение лица в кадре и возвращает предупреждения
// в фиксированном порядке: горизонталь, вертикаль, дистанция, наклон.
func (t Thresholds) Evaluate(frameWidth, frameHeight int, face BoundingBox) []Alert {
	alerts := make([]Alert, 0, 4)

	center := FrameCenter(frameWidth, frameHeight)
	faceX, faceY := face.Center()

	xOffset := absInt(center.X - faceX)
	yOffset := absInt(center.Y - faceY)

	if float64(xOffset) > float64(frameWidth)*t.CenterTolerance {
		alerts = append(alerts, AlertCenterHorizontally)
	}
	if float64(yOffset) > float64(frameHeight)*t.CenterTolerance {
		alerts = append(alerts, AlertCenterVertically)
	}

	faceArea := float64(face.Area())
	frameArea := float64(frameWidth * frameHeight)

	if faceArea < frameArea*t.MinFaceAreaRatio {
		alerts = append(alerts, AlertMoveCloser)
	} else if faceArea > frameArea*t.MaxFaceAreaRatio {
		alerts = append(alerts, AlertMoveBack)
	}

	// Рамка с нулевой высотой нарушает контракт детектора: проверку наклона пропускаем.
	if ratio, ok := face.AspectRatio(); ok {
		if ratio < t.MinAspectRatio || ratio > t.MaxAspectRatio {
			alerts = append(alerts, AlertHeadTilt)
		}
	}

	return alerts
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
