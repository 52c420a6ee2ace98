package analysis

import (
	"fmt"
	"sort"
	"strings"

	"acnemap/internal/domain/entity"
)

// DefaultThreshold порог, выше которого зона попадает в советы.
const DefaultThreshold = 0.08

const Reassurance = "Заметных покраснений не найдено, кожа выглядит спокойной. Продолжайте базовый уход."

var regionTitles = map[entity.RegionName]string{
	entity.RegionForehead: "Лоб",
	entity.RegionCheeks:   "Щёки",
	entity.RegionNose:     "Нос",
	entity.RegionChin:     "Подбородок",
}

// RegionTitle человекочитаемое название зоны.
func RegionTitle(name entity.RegionName) string {
	if t, ok := regionTitles[name]; ok {
		return t
	}
	return string(name)
}

// RankRegions сортирует оцениваемые зоны по убыванию оценки.
// При равенстве сохраняется порядок entity.ScoredRegions.
func RankRegions(scores entity.Scores) []entity.RegionName {
	ranked := make([]entity.RegionName, len(entity.ScoredRegions))
	copy(ranked, entity.ScoredRegions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores.Get(ranked[i]) > scores.Get(ranked[j])
	})
	return ranked
}

// SelectAdvice выбирает зоны с оценкой выше порога и подбирает к ним советы.
// Общие советы добавляются всегда.
func SelectAdvice(scores entity.Scores, book *entity.RemedyBook, threshold float64) *entity.Advice {
	advice := &entity.Advice{
		Selected:  []entity.RegionAdvice{},
		Universal: book.Universal(),
	}

	for _, name := range RankRegions(scores) {
		score := scores.Get(name)
		if score <= threshold {
			continue
		}
		advice.Selected = append(advice.Selected, entity.RegionAdvice{
			Region: name,
			Score:  score,
			Tips:   book.For(name),
		})
	}

	if len(advice.Selected) == 0 {
		advice.Reassurance = Reassurance
	}
	return advice
}

// RenderText готовит советы для текстового сообщения.
func RenderText(advice *entity.Advice) string {
	var sb strings.Builder

	if len(advice.Selected) == 0 {
		sb.WriteString("✅ ")
		sb.WriteString(advice.Reassurance)
		sb.WriteString("\n")
	} else {
		sb.WriteString("🔎 Зоны с покраснением:\n")
		for _, region := range advice.Selected {
			fmt.Fprintf(&sb, "\n📍 %s (%.0f%%)\n", RegionTitle(region.Region), region.Score*100)
			writeTips(&sb, region.Tips)
		}
	}

	if len(advice.Universal) > 0 {
		sb.WriteString("\n🧼 Общие советы:\n")
		writeTips(&sb, advice.Universal)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeTips(sb *strings.Builder, tips []entity.Remedy) {
	for _, tip := range tips {
		fmt.Fprintf(sb, "• %s\n", tip.Title)
		if tip.How != "" {
			fmt.Fprintf(sb, "  Как: %s\n", tip.How)
		}
		if tip.Caution != "" {
			fmt.Fprintf(sb, "  ⚠️ %s\n", tip.Caution)
		}
	}
}
