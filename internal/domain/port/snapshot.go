package port

import "context"

// SnapshotStore хранилище снимков с тепловой картой
type SnapshotStore interface {
	// Save сохраняет PNG и возвращает его адрес
	Save(ctx context.Context, scanID string, png []byte) (string, error)
}
