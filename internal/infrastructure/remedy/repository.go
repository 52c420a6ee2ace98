package remedy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"acnemap/internal/domain/entity"
)

//go:embed remedies.yaml
var defaultRemedies []byte

// remedyDTO запись файла советов. JSON читается тем же парсером:
// он является подмножеством YAML.
type remedyDTO struct {
	Title   string `yaml:"title"`
	How     string `yaml:"how"`
	Caution string `yaml:"caution"`
}

// Default возвращает встроенную книгу советов.
func Default() (*entity.RemedyBook, error) {
	return Parse(defaultRemedies)
}

// Load читает книгу советов из YAML или JSON файла.
// Пустой путь: встроенная книга.
func Load(path string) (*entity.RemedyBook, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read remedies %s: %w", path, err)
	}
	book, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse remedies %s: %w", path, err)
	}
	return book, nil
}

// Parse разбирает содержимое файла советов.
func Parse(data []byte) (*entity.RemedyBook, error) {
	var raw map[string][]remedyDTO
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	entries := make(map[entity.RegionName][]entity.Remedy, len(raw))
	for region, list := range raw {
		tips := make([]entity.Remedy, 0, len(list))
		for _, r := range list {
			tips = append(tips, entity.Remedy{Title: r.Title, How: r.How, Caution: r.Caution})
		}
		entries[entity.RegionName(region)] = tips
	}
	return entity.NewRemedyBook(entries), nil
}
