//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// GoCVSource заглушка детектора на OpenCV (сборка без тега gocv).
type GoCVSource struct{}

// NewGoCVSource возвращает ошибку, если сборка без тега gocv.
func NewGoCVSource(cascadePath string) (*GoCVSource, error) {
	_ = cascadePath
	return nil, errNoGoCV
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *GoCVSource) Detect(ctx context.Context, frame image.Image) (*entity.LandmarkSet, error) {
	_ = ctx
	_ = frame
	return nil, errNoGoCV
}

func (d *GoCVSource) Topology() entity.Topology {
	return analysis.Ellipse37()
}

func (d *GoCVSource) Close() error {
	return nil
}
