package block

import "github.com/sompylasar/draft-js/internal/engine/character"

// FindRanges scans items for maximal runs of consecutive elements that are
// equal under equal. For each run whose first element passes filter, found
// is called with the half-open [start, end) bounds of the run.
func FindRanges[T any](items []T, equal func(a, b T) bool, filter func(T) bool, found func(start, end int)) {
	if len(items) == 0 {
		return
	}
	cursor := 0
	for i := 1; i < len(items); i++ {
		if !equal(items[i-1], items[i]) {
			if filter(items[cursor]) {
				found(cursor, i)
			}
			cursor = i
		}
	}
	if filter(items[cursor]) {
		found(cursor, len(items))
	}
}

// Range is a half-open [Start, End) span of rune offsets.
type Range struct {
	Start int
	End   int
}

// Len returns the span length.
func (r Range) Len() int { return r.End - r.Start }

// SameStyle reports whether two characters carry the same style set.
func SameStyle(a, b *character.Metadata) bool {
	return a == b || a.Style().Equal(b.Style())
}

// SameEntity reports whether two characters reference the same entity.
func SameEntity(a, b *character.Metadata) bool {
	return a.Entity() == b.Entity()
}

// FindStyleRanges reports maximal runs of equal style whose first character
// passes filter.
func (b *Block) FindStyleRanges(filter func(*character.Metadata) bool, found func(start, end int)) {
	FindRanges(b.chars, SameStyle, filter, found)
}

// FindEntityRanges reports maximal runs of equal entity whose first
// character passes filter.
func (b *Block) FindEntityRanges(filter func(*character.Metadata) bool, found func(start, end int)) {
	FindRanges(b.chars, SameEntity, filter, found)
}

// EntityRanges returns every run of characters referencing key.
func (b *Block) EntityRanges(key string) []Range {
	var out []Range
	b.FindEntityRanges(
		func(m *character.Metadata) bool { return m.Entity() == key },
		func(start, end int) { out = append(out, Range{Start: start, End: end}) },
	)
	return out
}
