package port

import (
	"context"
	"image"

	"acnemap/internal/domain/entity"
)

// LandmarkSource внешний детектор ориентиров лица
type LandmarkSource interface {
	// Detect ищет лицо на кадре и возвращает нормализованные ориентиры.
	// Если лица нет, возвращает entity.ErrNoFace.
	Detect(ctx context.Context, frame image.Image) (*entity.LandmarkSet, error)

	// Topology возвращает раскладку ориентиров, которую выдаёт детектор
	Topology() entity.Topology

	Close() error
}

// FrameSource источник кадров (камера)
type FrameSource interface {
	// Read возвращает очередной кадр
	Read(ctx context.Context) (image.Image, error)

	// Close освобождает устройство
	Close() error
}
