package analysis

import (
	"image"
	"image/color"
	"math"

	"acnemap/internal/domain/entity"
)

// Пороги «красного» пикселя. Не откалиброваны под разные тона кожи.
const (
	RedMin       = 110
	RedExcessMin = 25
)

// SampleStep шаг сетки выборки: max(2, round(min(w,h)/200)).
func SampleStep(width, height int) int {
	step := int(math.Round(float64(min(width, height)) / 200))
	return max(2, step)
}

// IsRed классифицирует пиксель по 8-битным каналам.
func IsRed(r, g, b uint8) bool {
	ri := int(r)
	return ri > RedMin && float64(ri)-float64(int(g)+int(b))/2 > RedExcessMin
}

// Score возвращает долю «красных» точек сетки внутри многоугольника.
// Сетка идёт от начала кадра с шагом SampleStep; обход ограничен рамкой
// многоугольника, набор точек при этом тот же, что и при обходе всего кадра.
// Для многоугольника меньше чем из 3 точек и при отсутствии попаданий: 0.
func Score(poly entity.Polygon, frame image.Image) float64 {
	if len(poly) < 3 || frame == nil {
		return 0
	}

	b := frame.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return 0
	}
	step := SampleStep(width, height)

	minX, minY, maxX, maxY := poly.Bounds()
	x0 := gridStart(minX, step)
	y0 := gridStart(minY, step)

	hits, red := 0, 0
	for y := y0; y < height && float64(y) <= maxY; y += step {
		for x := x0; x < width && float64(x) <= maxX; x += step {
			if !poly.Contains(float64(x), float64(y)) {
				continue
			}
			hits++
			r, g, bl := rgbAt(frame, b.Min.X+x, b.Min.Y+y)
			if IsRed(r, g, bl) {
				red++
			}
		}
	}

	if hits == 0 {
		return 0
	}
	return float64(red) / float64(hits)
}

// gridStart первый узел сетки не левее v.
func gridStart(v float64, step int) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v/float64(step))) * step
}

func rgbAt(img image.Image, x, y int) (r, g, b uint8) {
	switch src := img.(type) {
	case *image.NRGBA:
		i := src.PixOffset(x, y)
		return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
	case *image.RGBA:
		i := src.PixOffset(x, y)
		return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
	default:
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		return c.R, c.G, c.B
	}
}

// ScoreRegions считает оценки всех зон кадра.
// Щёки: среднее независимых оценок левой и правой половин.
func ScoreRegions(regions entity.Regions, frame image.Image) entity.Scores {
	left := Score(regions.LeftCheek, frame)
	right := Score(regions.RightCheek, frame)

	return entity.Scores{
		Forehead:   Score(regions.Forehead, frame),
		Cheeks:     (left + right) / 2,
		Nose:       Score(regions.Nose, frame),
		Chin:       Score(regions.Chin, frame),
		LeftCheek:  left,
		RightCheek: right,
	}
}
