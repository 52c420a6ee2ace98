package analysis

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"acnemap/internal/domain/entity"
)

func TestSampleStep(t *testing.T) {
	require.Equal(t, 2, SampleStep(100, 100))
	require.Equal(t, 2, SampleStep(640, 480))
	require.Equal(t, 5, SampleStep(1920, 1080))
	require.Equal(t, 10, SampleStep(4000, 2000))
}

func TestIsRed(t *testing.T) {
	require.True(t, IsRed(200, 60, 60))
	require.False(t, IsRed(110, 0, 0), "red channel must exceed 110")
	require.False(t, IsRed(150, 130, 120), "excess over green/blue must exceed 25")
	require.True(t, IsRed(150, 120, 129))
	require.False(t, IsRed(120, 120, 120))
}

func TestScore_FewerThanThreePoints(t *testing.T) {
	frame := solidFrame(100, 100, red)
	require.Zero(t, Score(nil, frame))
	require.Zero(t, Score(entity.Polygon{{X: 1, Y: 1}}, frame))
	require.Zero(t, Score(entity.Polygon{{X: 1, Y: 1}, {X: 50, Y: 50}}, frame))
}

func TestScore_SolidFrames(t *testing.T) {
	poly := square(10, 10, 60, 60)
	require.Equal(t, 1.0, Score(poly, solidFrame(100, 100, red)))
	require.Equal(t, 0.0, Score(poly, solidFrame(100, 100, skin)))
}

func TestScore_NoHits(t *testing.T) {
	// Треугольник меньше шага сетки не содержит ни одного узла.
	poly := entity.Polygon{{X: 10.2, Y: 10.2}, {X: 11.5, Y: 10.2}, {X: 10.2, Y: 11.5}}
	require.Zero(t, Score(poly, solidFrame(100, 100, red)))
}

func TestScore_OutsideFrame(t *testing.T) {
	poly := square(-50, -50, -10, -10)
	require.Zero(t, Score(poly, solidFrame(100, 100, red)))
}

func TestScore_MatchesFullFrameWalk(t *testing.T) {
	frame := solidFrame(300, 220, skin)
	for y := 0; y < 220; y++ {
		for x := 0; x < 300; x++ {
			if (x*7+y*13)%5 == 0 {
				frame.SetNRGBA(x, y, red)
			}
		}
	}

	polygons := []entity.Polygon{
		square(13.3, 7.9, 141.2, 99.5),
		{{X: -20, Y: 40}, {X: 150, Y: -10}, {X: 310, Y: 200}, {X: 40, Y: 230}},
		{{X: 50, Y: 50}, {X: 120, Y: 60}, {X: 90, Y: 150}, {X: 70, Y: 90}},
	}
	for _, poly := range polygons {
		require.InDelta(t, scoreFullFrame(poly, frame), Score(poly, frame), 1e-12)
	}
}

func TestScore_RangeAndIdempotence(t *testing.T) {
	frame := solidFrame(200, 200, skin)
	for y := 0; y < 200; y += 3 {
		for x := 0; x < 200; x++ {
			frame.SetNRGBA(x, y, red)
		}
	}
	poly := entity.Polygon{{X: 20, Y: 30}, {X: 170, Y: 25}, {X: 150, Y: 180}, {X: 40, Y: 160}}

	first := Score(poly, frame)
	require.GreaterOrEqual(t, first, 0.0)
	require.LessOrEqual(t, first, 1.0)
	require.Greater(t, first, 0.0)
	require.Less(t, first, 1.0)
	require.Equal(t, first, Score(poly, frame))
}

func TestScore_Monotonic(t *testing.T) {
	frame := solidFrame(120, 120, skin)
	poly := square(10, 10, 100, 100)

	prev := Score(poly, frame)
	for y := 10; y <= 100; y += 10 {
		for x := 0; x < 120; x++ {
			frame.SetNRGBA(x, y, red)
		}
		cur := Score(poly, frame)
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	require.Greater(t, prev, 0.0)
}

func TestScore_GenericImage(t *testing.T) {
	frame := solidFrame(50, 50, red)
	require.Equal(t, 1.0, Score(square(5, 5, 40, 40), wrappedImage{frame}))
}

func TestScoreRegions_CheeksAreAverageOfHalves(t *testing.T) {
	const w, h = 400, 400
	frame := solidFrame(w, h, skin)
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			if (x+y)%3 == 0 {
				frame.SetNRGBA(x, y, red)
			}
		}
	}

	regions := BuildRegions(dlib68Face(), Dlib68(), w, h)
	scores := ScoreRegions(regions, frame)

	left := Score(regions.LeftCheek, frame)
	right := Score(regions.RightCheek, frame)
	require.Equal(t, left, scores.LeftCheek)
	require.Equal(t, right, scores.RightCheek)
	require.InDelta(t, (left+right)/2, scores.Cheeks, 1e-12)
	require.Greater(t, left, right)
}

// wrappedImage прячет конкретный тип, чтобы проверить общий путь чтения пикселей.
type wrappedImage struct {
	image.Image
}
