package entity

// Point точка на плоскости.
// У ориентиров координаты нормализованы в [0,1], у полигонов: пиксельные.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet упорядоченный набор ориентиров лица для одного кадра.
// После создания набор не меняется.
type LandmarkSet struct {
	points []Point
}

// NewLandmarkSet копирует точки в новый набор.
func NewLandmarkSet(points []Point) *LandmarkSet {
	cp := make([]Point, len(points))
	copy(cp, points)
	return &LandmarkSet{points: cp}
}

// Len возвращает количество ориентиров
func (l *LandmarkSet) Len() int {
	if l == nil {
		return 0
	}
	return len(l.points)
}

// At возвращает нормализованный ориентир по индексу.
func (l *LandmarkSet) At(i int) (Point, bool) {
	if l == nil || i < 0 || i >= len(l.points) {
		return Point{}, false
	}
	return l.points[i], true
}

// Pixel переводит ориентир i в пиксельные координаты кадра width x height.
func (l *LandmarkSet) Pixel(i, width, height int) (Point, bool) {
	p, ok := l.At(i)
	if !ok {
		return Point{}, false
	}
	return Point{X: p.X * float64(width), Y: p.Y * float64(height)}, true
}

// Points возвращает копию всех ориентиров.
func (l *LandmarkSet) Points() []Point {
	if l == nil {
		return nil
	}
	cp := make([]Point, len(l.points))
	copy(cp, l.points)
	return cp
}
