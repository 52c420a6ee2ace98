package entity

// RegionName название зоны лица
type RegionName string

const (
	RegionForehead   RegionName = "forehead"
	RegionCheeks     RegionName = "cheeks"
	RegionNose       RegionName = "nose"
	RegionChin       RegionName = "chin"
	RegionLeftCheek  RegionName = "left_cheek"
	RegionRightCheek RegionName = "right_cheek"

	// RegionUniversal зарезервированный ключ общих советов в книге рецептов.
	RegionUniversal RegionName = "universal"
)

// ScoredRegions зоны, для которых считается итоговая оценка, в фиксированном порядке.
var ScoredRegions = []RegionName{RegionForehead, RegionCheeks, RegionNose, RegionChin}

// Polygon замкнутый многоугольник в пикселях (последняя точка соединяется с первой).
type Polygon []Point

// Contains проверяет попадание точки внутрь многоугольника (метод луча).
func (p Polygon) Contains(x, y float64) bool {
	n := len(p)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p[i].X, p[i].Y
		xj, yj := p[j].X, p[j].Y
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Bounds возвращает ограничивающий прямоугольник многоугольника.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = p[0].X, p[0].Y
	maxX, maxY = p[0].X, p[0].Y
	for _, pt := range p[1:] {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// Regions многоугольники зон лица одного кадра.
// Все они построены по одному набору ориентиров и одним размерам кадра.
type Regions struct {
	Forehead   Polygon `json:"forehead"`
	LeftCheek  Polygon `json:"left_cheek"`
	RightCheek Polygon `json:"right_cheek"`
	Nose       Polygon `json:"nose"`
	Chin       Polygon `json:"chin"`
	Outline    Polygon `json:"outline"`
}

// Each обходит зоны в порядке отрисовки.
func (r Regions) Each(fn func(name RegionName, poly Polygon)) {
	fn(RegionForehead, r.Forehead)
	fn(RegionLeftCheek, r.LeftCheek)
	fn(RegionRightCheek, r.RightCheek)
	fn(RegionNose, r.Nose)
	fn(RegionChin, r.Chin)
}

// Scores доля «красных» точек по зонам, каждая в [0,1].
type Scores struct {
	Forehead   float64 `json:"forehead"`
	Cheeks     float64 `json:"cheeks"`
	Nose       float64 `json:"nose"`
	Chin       float64 `json:"chin"`
	LeftCheek  float64 `json:"left_cheek"`
	RightCheek float64 `json:"right_cheek"`
}

// Get возвращает оценку зоны по имени. Для неизвестной зоны: 0.
func (s Scores) Get(name RegionName) float64 {
	switch name {
	case RegionForehead:
		return s.Forehead
	case RegionCheeks:
		return s.Cheeks
	case RegionNose:
		return s.Nose
	case RegionChin:
		return s.Chin
	case RegionLeftCheek:
		return s.LeftCheek
	case RegionRightCheek:
		return s.RightCheek
	default:
		return 0
	}
}
