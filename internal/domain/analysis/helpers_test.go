package analysis

import (
	"image"
	"image/color"
	"math"

	"acnemap/internal/domain/entity"
)

var (
	skin = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	red  = color.NRGBA{R: 200, G: 60, B: 60, A: 255}
)

func solidFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func square(x0, y0, x1, y1 float64) entity.Polygon {
	return entity.Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// dlib68Face раскладка из 68 точек: челюсть по эллипсу, нос по центру.
func dlib68Face() *entity.LandmarkSet {
	points := make([]entity.Point, 68)
	for i := range points {
		points[i] = entity.Point{X: 0.5, Y: 0.5}
	}
	for i := 0; i <= 16; i++ {
		theta := math.Pi - float64(i)*math.Pi/16
		points[i] = entity.Point{X: 0.5 + 0.35*math.Cos(theta), Y: 0.45 + 0.4*math.Sin(theta)}
	}
	for i := 27; i <= 30; i++ {
		points[i] = entity.Point{X: 0.5, Y: 0.35 + float64(i-27)*0.07}
	}
	for i := 31; i <= 35; i++ {
		points[i] = entity.Point{X: 0.44 + float64(i-31)*0.03, Y: 0.58}
	}
	return entity.NewLandmarkSet(points)
}

// scoreFullFrame обходит всю сетку кадра без ограничения рамкой.
func scoreFullFrame(poly entity.Polygon, frame *image.NRGBA) float64 {
	if len(poly) < 3 {
		return 0
	}
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	step := SampleStep(w, h)
	hits, reds := 0, 0
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			if !poly.Contains(float64(x), float64(y)) {
				continue
			}
			hits++
			c := frame.NRGBAAt(x, y)
			if IsRed(c.R, c.G, c.B) {
				reds++
			}
		}
	}
	if hits == 0 {
		return 0
	}
	return float64(reds) / float64(hits)
}
