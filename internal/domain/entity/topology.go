package entity

import "fmt"

// Span полуинтервал [From, To) в списке индексов контура.
type Span struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Topology описывает раскладку ориентиров конкретной модели:
// какие индексы образуют контур лица, лоб, подбородок и нос.
type Topology struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`     // минимальное количество ориентиров
	Outline  []int  `json:"outline"`  // контур лица по порядку обхода
	Forehead Span   `json:"forehead"` // срез контура под лоб
	Chin     Span   `json:"chin"`     // срез контура под подбородок
	Nose     []int  `json:"nose"`     // многоугольник носа
	Midline  int    `json:"midline"`  // ориентир, по вертикали через который делятся щёки
}

// Validate проверяет, что все индексы лежат внутри раскладки.
func (t Topology) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("topology: empty name")
	}
	if t.Size <= 0 {
		return fmt.Errorf("topology %s: size must be positive", t.Name)
	}

	check := func(field string, idx []int) error {
		for _, i := range idx {
			if i < 0 || i >= t.Size {
				return fmt.Errorf("topology %s: %s index %d out of range [0,%d)", t.Name, field, i, t.Size)
			}
		}
		return nil
	}
	if err := check("outline", t.Outline); err != nil {
		return err
	}
	if err := check("nose", t.Nose); err != nil {
		return err
	}
	if err := check("midline", []int{t.Midline}); err != nil {
		return err
	}

	for field, s := range map[string]Span{"forehead": t.Forehead, "chin": t.Chin} {
		if s.From < 0 || s.To > len(t.Outline) || s.From > s.To {
			return fmt.Errorf("topology %s: %s span [%d,%d) outside outline of %d", t.Name, field, s.From, s.To, len(t.Outline))
		}
	}
	return nil
}

// Slice возвращает индексы контура, попавшие в срез.
func (t Topology) Slice(s Span) []int {
	return t.Outline[s.From:s.To]
}
