package entity

// RegionAdvice советы для одной зоны, превысившей порог.
type RegionAdvice struct {
	Region RegionName `json:"region"`
	Score  float64    `json:"score"`
	Tips   []Remedy   `json:"tips"`
}

// Advice итог подбора советов.
// Если ни одна зона не превысила порог, Selected пуст, а Reassurance заполнен.
type Advice struct {
	Selected    []RegionAdvice `json:"selected"`
	Reassurance string         `json:"reassurance,omitempty"`
	Universal   []Remedy       `json:"universal"`
}

// Regions возвращает выбранные зоны по порядку.
func (a *Advice) Regions() []RegionName {
	out := make([]RegionName, 0, len(a.Selected))
	for _, s := range a.Selected {
		out = append(out, s.Region)
	}
	return out
}
