package analysis

import (
	"fmt"
	"sort"

	"acnemap/internal/domain/entity"
)

const (
	TopologyDlib68     = "dlib68"
	TopologyFaceMesh   = "facemesh468"
	TopologyEllipse37  = "ellipse37"
	DefaultTopologyKey = TopologyDlib68
)

// Индексы синтетической раскладки ellipse37, которую строят детекторы
// без собственной сетки ориентиров (pigo, каскады OpenCV).
const (
	Ellipse37JawFirst      = 0  // 0..16 нижняя дуга от левого уха через подбородок
	Ellipse37NoseFirst     = 17 // 17..24 контур носа
	Ellipse37NoseTip       = 25
	Ellipse37ForeheadFirst = 26 // 26..34 верхняя дуга слева направо
	Ellipse37LeftPupil     = 35
	Ellipse37RightPupil    = 36
	Ellipse37Size          = 37
)

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func rseq(from, to int) []int {
	out := make([]int, 0, from-to+1)
	for i := from; i >= to; i-- {
		out = append(out, i)
	}
	return out
}

// Dlib68 раскладка face-api.js / dlib: контур челюсти 0..16, нос 27..35.
// Лоб и подбородок: фиксированные срезы контура челюсти.
func Dlib68() entity.Topology {
	return entity.Topology{
		Name:     TopologyDlib68,
		Size:     68,
		Outline:  seq(0, 16),
		Forehead: entity.Span{From: 0, To: 9},
		Chin:     entity.Span{From: 9, To: 17},
		Nose:     seq(27, 35),
		Midline:  30,
	}
}

// FaceMesh468 раскладка MediaPipe Face Mesh. Контур: овал лица,
// начиная с левого виска через лоб.
func FaceMesh468() entity.Topology {
	return entity.Topology{
		Name: TopologyFaceMesh,
		Size: 468,
		Outline: []int{
			162, 21, 54, 103, 67, 109, 10, 338, 297, 332, 284, 251, 389,
			356, 454, 323, 361, 288, 397, 365, 379, 378, 400, 377, 152,
			148, 176, 149, 150, 136, 172, 58, 132, 93, 234, 127,
		},
		Forehead: entity.Span{From: 0, To: 13},
		Chin:     entity.Span{From: 19, To: 30},
		Nose:     []int{6, 351, 278, 294, 327, 2, 98, 64, 48, 122},
		Midline:  1,
	}
}

// Ellipse37 раскладка, синтезированная по рамке лица.
func Ellipse37() entity.Topology {
	outline := append(seq(Ellipse37JawFirst, Ellipse37JawFirst+16), rseq(Ellipse37ForeheadFirst+8, Ellipse37ForeheadFirst)...)
	return entity.Topology{
		Name:     TopologyEllipse37,
		Size:     Ellipse37Size,
		Outline:  outline,
		Forehead: entity.Span{From: 17, To: 26},
		Chin:     entity.Span{From: 5, To: 12},
		Nose:     seq(Ellipse37NoseFirst, Ellipse37NoseFirst+7),
		Midline:  Ellipse37NoseTip,
	}
}

// Registry справочник раскладок по имени. После создания только читается.
type Registry struct {
	topologies map[string]entity.Topology
}

// NewRegistry собирает справочник из встроенных раскладок и дополнительных.
func NewRegistry(extra ...entity.Topology) (*Registry, error) {
	r := &Registry{topologies: make(map[string]entity.Topology)}
	for _, t := range append([]entity.Topology{Dlib68(), FaceMesh468(), Ellipse37()}, extra...) {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		r.topologies[t.Name] = t
	}
	return r, nil
}

// Get возвращает раскладку по имени. Пустое имя: раскладка по умолчанию.
func (r *Registry) Get(name string) (entity.Topology, error) {
	if name == "" {
		name = DefaultTopologyKey
	}
	t, ok := r.topologies[name]
	if !ok {
		return entity.Topology{}, fmt.Errorf("%w: %q", entity.ErrUnknownTopology, name)
	}
	return t, nil
}

// Names возвращает отсортированные имена раскладок.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.topologies))
	for name := range r.topologies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
