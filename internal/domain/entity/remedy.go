package entity

// Remedy один совет по уходу.
type Remedy struct {
	Title   string `json:"title"`
	How     string `json:"how"`
	Caution string `json:"caution"`
}

// RemedyBook статичная книга советов: по зонам и общие.
// Загружается один раз при старте и дальше только читается.
type RemedyBook struct {
	regions   map[RegionName][]Remedy
	universal []Remedy
}

// NewRemedyBook собирает книгу. Ключ RegionUniversal уходит в общие советы.
func NewRemedyBook(entries map[RegionName][]Remedy) *RemedyBook {
	book := &RemedyBook{regions: make(map[RegionName][]Remedy, len(entries))}
	for name, list := range entries {
		cp := make([]Remedy, len(list))
		copy(cp, list)
		if name == RegionUniversal {
			book.universal = cp
			continue
		}
		book.regions[name] = cp
	}
	return book
}

// For возвращает советы для зоны. Отсутствующая зона даёт пустой список.
func (b *RemedyBook) For(name RegionName) []Remedy {
	if b == nil {
		return []Remedy{}
	}
	list, ok := b.regions[name]
	if !ok {
		return []Remedy{}
	}
	return list
}

// Universal возвращает общие советы по гигиене.
func (b *RemedyBook) Universal() []Remedy {
	if b == nil || b.universal == nil {
		return []Remedy{}
	}
	return b.universal
}

// Entries возвращает содержимое книги вместе с общими советами.
func (b *RemedyBook) Entries() map[RegionName][]Remedy {
	out := make(map[RegionName][]Remedy, len(b.regions)+1)
	for name, list := range b.regions {
		out[name] = list
	}
	out[RegionUniversal] = b.Universal()
	return out
}
