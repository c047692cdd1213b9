package port

import (
	"context"

	"posture-monitor/internal/domain/entity"
)

// FaceDetector интерфейс детектора лиц
type FaceDetector interface {
	// Detect ищет лица на одноканальном изображении.
	// Порядок результатов определяется реализацией.
	Detect(ctx context.Context, gray GrayImage, params entity.DetectParams) ([]entity.BoundingBox, error)
}
