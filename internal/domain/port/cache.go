package port

import (
	"context"

	"acnemap/internal/domain/entity"
)

// ScanCache кэш результатов сканирования по ключу содержимого кадра
type ScanCache interface {
	// Get возвращает результат или nil, если в кэше его нет
	Get(ctx context.Context, key string) (*entity.ScanResult, error)

	Set(ctx context.Context, key string, result *entity.ScanResult) error
}
