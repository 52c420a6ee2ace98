//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

// GoCVSource ищет лицо каскадом Хаара OpenCV и синтезирует ориентиры ellipse37.
type GoCVSource struct {
	mu         sync.Mutex // CascadeClassifier не потокобезопасен
	classifier gocv.CascadeClassifier

	MinImageSide         int
	MaxUnderexposedRatio float64
}

// NewGoCVSource загружает каскад из XML-файла.
func NewGoCVSource(cascadePath string) (*GoCVSource, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("load haar cascade %s", cascadePath)
	}
	return &GoCVSource{
		classifier:           classifier,
		MinImageSide:         120,
		MaxUnderexposedRatio: 0.6,
	}, nil
}

// Detect возвращает ориентиры самого крупного лица на кадре.
func (d *GoCVSource) Detect(ctx context.Context, frame image.Image) (*entity.LandmarkSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	if err := d.checkImageQuality(mat); err != nil {
		return nil, err
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	gocv.EqualizeHist(gray, &gray)

	d.mu.Lock()
	rects := d.classifier.DetectMultiScale(gray)
	d.mu.Unlock()

	if len(rects) == 0 {
		return nil, entity.ErrNoFace
	}

	largest := rects[0]
	for _, r := range rects[1:] {
		if r.Dx()*r.Dy() > largest.Dx()*largest.Dy() {
			largest = r
		}
	}

	box := FaceBox{
		CX:   float64(largest.Min.X) + float64(largest.Dx())/2,
		CY:   float64(largest.Min.Y) + float64(largest.Dy())/2,
		Size: float64(max(largest.Dx(), largest.Dy())),
	}
	return Ellipse37Landmarks(box, nil, mat.Cols(), mat.Rows()), nil
}

// Topology возвращает раскладку ellipse37
func (d *GoCVSource) Topology() entity.Topology {
	return analysis.Ellipse37()
}

// Close освобождает каскад
func (d *GoCVSource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}

func (d *GoCVSource) checkImageQuality(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("quality gate failed: empty image")
	}

	if mat.Cols() < d.MinImageSide || mat.Rows() < d.MinImageSide {
		return fmt.Errorf("quality gate failed: image is too small (%dx%d)", mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	underexposedRatio := ratioOfMask(dark)
	if underexposedRatio > d.MaxUnderexposedRatio {
		return fmt.Errorf("quality gate failed: underexposed image (ratio=%.4f)", underexposedRatio)
	}

	return nil
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

var _ port.LandmarkSource = (*GoCVSource)(nil)
