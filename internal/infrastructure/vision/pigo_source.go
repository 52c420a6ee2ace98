package vision

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	pigo "github.com/esimov/pigo/core"
	"go.uber.org/zap"

	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

const (
	facefinderFile = "facefinder"
	puplocFile     = "puploc"
)

// PigoSource ищет лицо каскадом pigo (чистый Go) и синтезирует ориентиры ellipse37.
type PigoSource struct {
	face   *pigo.Pigo
	puploc *pigo.PuplocCascade // nil: зрачки не ищем

	MinSizeRatio float64 // минимальный размер лица относительно меньшей стороны кадра
	MinQuality   float32 // минимальная уверенность детекции
	IoU          float64 // порог склейки пересекающихся детекций

	log *zap.Logger
}

// NewPigoSource загружает каскады из каталога. Файл puploc необязателен.
func NewPigoSource(cascadeDir string, log *zap.Logger) (*PigoSource, error) {
	data, err := os.ReadFile(filepath.Join(cascadeDir, facefinderFile))
	if err != nil {
		return nil, fmt.Errorf("read facefinder cascade: %w", err)
	}
	face, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack facefinder cascade: %w", err)
	}

	src := &PigoSource{
		face:         face,
		MinSizeRatio: 0.15,
		MinQuality:   5.0,
		IoU:          0.2,
		log:          log,
	}

	plData, err := os.ReadFile(filepath.Join(cascadeDir, puplocFile))
	if err != nil {
		log.Warn("puploc cascade not found, pupils disabled", zap.String("dir", cascadeDir), zap.Error(err))
		return src, nil
	}
	puploc, err := pigo.NewPuplocCascade().UnpackCascade(plData)
	if err != nil {
		return nil, fmt.Errorf("unpack puploc cascade: %w", err)
	}
	src.puploc = puploc
	return src, nil
}

// Detect находит самое уверенное лицо на кадре.
func (s *PigoSource) Detect(ctx context.Context, frame image.Image) (*entity.LandmarkSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := frame.Bounds()
	cols, rows := b.Dx(), b.Dy()
	if cols == 0 || rows == 0 {
		return nil, entity.ErrNoFace
	}

	params := pigo.ImageParams{
		Pixels: pigo.RgbToGrayscale(frame),
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}
	side := min(cols, rows)
	dets := s.face.RunCascade(pigo.CascadeParams{
		MinSize:     max(20, int(float64(side)*s.MinSizeRatio)),
		MaxSize:     side,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: params,
	}, 0.0)
	dets = s.face.ClusterDetections(dets, s.IoU)

	best := -1
	for i, d := range dets {
		if d.Q < s.MinQuality {
			continue
		}
		if best < 0 || d.Q > dets[best].Q {
			best = i
		}
	}
	if best < 0 {
		return nil, entity.ErrNoFace
	}

	det := dets[best]
	box := FaceBox{CX: float64(det.Col), CY: float64(det.Row), Size: float64(det.Scale)}
	s.log.Debug("pigo face",
		zap.Int("row", det.Row), zap.Int("col", det.Col),
		zap.Int("scale", det.Scale), zap.Float32("q", det.Q))

	return Ellipse37Landmarks(box, s.pupils(det, params), cols, rows), nil
}

// pupils уточняет положение глаз каскадом puploc.
func (s *PigoSource) pupils(det pigo.Detection, params pigo.ImageParams) *Pupils {
	if s.puploc == nil {
		return nil
	}

	find := func(dir int) *pigo.Puploc {
		pl := pigo.Puploc{
			Row:      det.Row - int(0.075*float32(det.Scale)),
			Col:      det.Col + dir*int(0.175*float32(det.Scale)),
			Scale:    float32(det.Scale) * 0.25,
			Perturbs: 50,
		}
		res := s.puploc.RunDetector(pl, params, 0.0, false)
		if res == nil || res.Row <= 0 || res.Col <= 0 {
			return nil
		}
		return res
	}

	left, right := find(-1), find(1)
	if left == nil || right == nil {
		return nil
	}
	return &Pupils{
		Left:  entity.Point{X: float64(left.Col), Y: float64(left.Row)},
		Right: entity.Point{X: float64(right.Col), Y: float64(right.Row)},
	}
}

// Topology возвращает раскладку ellipse37
func (s *PigoSource) Topology() entity.Topology {
	return analysis.Ellipse37()
}

// Close ничего не освобождает: каскады живут в памяти процесса
func (s *PigoSource) Close() error {
	return nil
}

var _ port.LandmarkSource = (*PigoSource)(nil)
