package analysis

import (
	"fmt"

	"acnemap/internal/domain/entity"
)

// CheckLandmarks проверяет, что набора хватает для раскладки.
func CheckLandmarks(set *entity.LandmarkSet, topo entity.Topology) error {
	if set.Len() < topo.Size {
		return fmt.Errorf("%w: %s needs %d, got %d", entity.ErrLandmarkCount, topo.Name, topo.Size, set.Len())
	}
	return nil
}

// BuildRegions строит многоугольники зон лица в пикселях кадра width x height.
// Геометрия не проверяется: вырожденный многоугольник просто даст нулевую оценку.
func BuildRegions(set *entity.LandmarkSet, topo entity.Topology, width, height int) entity.Regions {
	outline := polygonOf(set, topo.Outline, width, height)
	left, right := splitAtMidline(set, topo, outline, width, height)

	return entity.Regions{
		Forehead:   polygonOf(set, topo.Slice(topo.Forehead), width, height),
		LeftCheek:  left,
		RightCheek: right,
		Nose:       polygonOf(set, topo.Nose, width, height),
		Chin:       polygonOf(set, topo.Slice(topo.Chin), width, height),
		Outline:    outline,
	}
}

func polygonOf(set *entity.LandmarkSet, indices []int, width, height int) entity.Polygon {
	poly := make(entity.Polygon, 0, len(indices))
	for _, i := range indices {
		if p, ok := set.Pixel(i, width, height); ok {
			poly = append(poly, p)
		}
	}
	return poly
}

// splitAtMidline делит контур вертикалью через ориентир Midline:
// точки с x < mid уходят в левую щёку, остальные в правую.
func splitAtMidline(set *entity.LandmarkSet, topo entity.Topology, outline entity.Polygon, width, height int) (left, right entity.Polygon) {
	mid, ok := set.Pixel(topo.Midline, width, height)
	if !ok {
		return entity.Polygon{}, entity.Polygon{}
	}

	left = make(entity.Polygon, 0, len(outline))
	right = make(entity.Polygon, 0, len(outline))
	for _, p := range outline {
		if p.X < mid.X {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	return left, right
}
