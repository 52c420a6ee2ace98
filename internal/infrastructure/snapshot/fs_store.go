package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"acnemap/internal/domain/port"
)

// FSStore складывает снимки в локальный каталог
type FSStore struct {
	dir string
}

// NewFSStore создаёт каталог, если его нет
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Save пишет снимок в файл acnemap-scan-<id>.png и возвращает путь
func (s *FSStore) Save(ctx context.Context, scanID string, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, fileName(scanID))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

func fileName(scanID string) string {
	return "acnemap-scan-" + scanID + ".png"
}

var _ port.SnapshotStore = (*FSStore)(nil)
