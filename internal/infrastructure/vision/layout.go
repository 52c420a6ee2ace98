package vision

import (
	"math"

	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
)

// FaceBox квадратная рамка лица в пикселях.
type FaceBox struct {
	CX, CY float64 // центр
	Size   float64 // сторона
}

// Pupils зрачки в пикселях
type Pupils struct {
	Left, Right entity.Point
}

// Пропорции лица относительно стороны рамки.
const (
	jawRadiusX    = 0.42
	jawRadiusY    = 0.6
	eyeOffsetY    = 0.1
	eyeOffsetX    = 0.18
	noseLength    = 0.28
	noseHalfWidth = 0.1
)

// Ellipse37Landmarks синтезирует раскладку ellipse37 по рамке лица.
// Контур: эллипс, вписанный в рамку; нос строится от линии глаз.
// Если зрачки найдены, по ним уточняются линия глаз и середина лица.
func Ellipse37Landmarks(box FaceBox, pupils *Pupils, width, height int) *entity.LandmarkSet {
	s := box.Size
	rx, ry := jawRadiusX*s, jawRadiusY*s

	left := entity.Point{X: box.CX - eyeOffsetX*s, Y: box.CY - eyeOffsetY*s}
	right := entity.Point{X: box.CX + eyeOffsetX*s, Y: box.CY - eyeOffsetY*s}
	if pupils != nil {
		left, right = pupils.Left, pupils.Right
	}
	nx := (left.X + right.X) / 2
	ty := (left.Y+right.Y)/2 + 0.03*s
	l := noseLength * s
	w := noseHalfWidth * s

	pts := make([]entity.Point, analysis.Ellipse37Size)

	for i := 0; i <= 16; i++ {
		theta := math.Pi - float64(i)*math.Pi/16
		pts[analysis.Ellipse37JawFirst+i] = entity.Point{X: box.CX + rx*math.Cos(theta), Y: box.CY + ry*math.Sin(theta)}
	}
	for k := 0; k <= 8; k++ {
		theta := math.Pi + float64(k+1)*math.Pi/10
		pts[analysis.Ellipse37ForeheadFirst+k] = entity.Point{X: box.CX + rx*math.Cos(theta), Y: box.CY + ry*math.Sin(theta)}
	}

	nose := []entity.Point{
		{X: nx, Y: ty},
		{X: nx + w/2, Y: ty + 0.4*l},
		{X: nx + w, Y: ty + 0.9*l},
		{X: nx + w/2, Y: ty + 1.05*l},
		{X: nx, Y: ty + 1.1*l},
		{X: nx - w/2, Y: ty + 1.05*l},
		{X: nx - w, Y: ty + 0.9*l},
		{X: nx - w/2, Y: ty + 0.4*l},
	}
	copy(pts[analysis.Ellipse37NoseFirst:], nose)
	pts[analysis.Ellipse37NoseTip] = entity.Point{X: nx, Y: ty + 0.85*l}
	pts[analysis.Ellipse37LeftPupil] = left
	pts[analysis.Ellipse37RightPupil] = right

	for i := range pts {
		pts[i] = normalize(pts[i], width, height)
	}
	return entity.NewLandmarkSet(pts)
}

func normalize(p entity.Point, width, height int) entity.Point {
	return entity.Point{
		X: clamp01(p.X / float64(width)),
		Y: clamp01(p.Y / float64(height)),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
