package analysis

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"acnemap/internal/domain/entity"
)

const (
	opacityBase = 0.1
	opacityGain = 0.8
	opacityCap  = 0.35
)

var (
	outlineColor = color.RGBA{R: 0xff, G: 0x6f, B: 0x91, A: 0xff}

	regionColors = map[entity.RegionName]color.RGBA{
		entity.RegionForehead:   {R: 0xff, G: 0xb3, B: 0x47, A: 0xff},
		entity.RegionLeftCheek:  {R: 0xff, G: 0x8a, B: 0x65, A: 0xff},
		entity.RegionRightCheek: {R: 0xff, G: 0x8a, B: 0x65, A: 0xff},
		entity.RegionNose:       {R: 0xf0, G: 0x62, B: 0x92, A: 0xff},
		entity.RegionChin:       {R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff},
	}
)

// Opacity непрозрачность заливки: min(0.35, 0.1 + score*0.8).
func Opacity(score float64) float64 {
	return math.Min(opacityCap, opacityBase+score*opacityGain)
}

// RegionColor цвет заливки зоны.
func RegionColor(name entity.RegionName) color.RGBA {
	if c, ok := regionColors[name]; ok {
		return c
	}
	return outlineColor
}

// Paint заливает многоугольник полупрозрачным цветом поверх dst.
// Вырожденный многоугольник ничего не закрашивает.
func Paint(dst *image.RGBA, poly entity.Polygon, score float64, c color.RGBA) {
	if len(poly) < 3 {
		return
	}

	alpha := Opacity(score)
	b := dst.Bounds()
	minX, minY, maxX, maxY := poly.Bounds()
	x0 := max(b.Min.X, int(math.Floor(minX)))
	y0 := max(b.Min.Y, int(math.Floor(minY)))
	x1 := min(b.Max.X, int(math.Ceil(maxX))+1)
	y1 := min(b.Max.Y, int(math.Ceil(maxY))+1)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if !poly.Contains(float64(x)+0.5, float64(y)+0.5) {
				continue
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i] = blend(dst.Pix[i], c.R, alpha)
			dst.Pix[i+1] = blend(dst.Pix[i+1], c.G, alpha)
			dst.Pix[i+2] = blend(dst.Pix[i+2], c.B, alpha)
		}
	}
}

func blend(dst, src uint8, alpha float64) uint8 {
	return uint8(math.Round(float64(dst)*(1-alpha) + float64(src)*alpha))
}

// Stroke обводит замкнутый многоугольник линией в один пиксель.
func Stroke(dst *image.RGBA, poly entity.Polygon, c color.RGBA) {
	n := len(poly)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		line(dst, int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), c)
	}
}

// line рисует отрезок по Брезенхэму.
func line(dst *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if (image.Point{X: x0, Y: y0}).In(dst.Bounds()) {
			dst.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RenderHeatmap копирует кадр и рисует поверх него тепловую карту зон и контур лица.
func RenderHeatmap(frame image.Image, regions entity.Regions, scores entity.Scores) *image.RGBA {
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), frame, b.Min, draw.Src)

	regions.Each(func(name entity.RegionName, poly entity.Polygon) {
		Paint(out, poly, scores.Get(name), RegionColor(name))
	})
	Stroke(out, regions.Outline, outlineColor)
	return out
}
