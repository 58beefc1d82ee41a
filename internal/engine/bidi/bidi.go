// Package bidi resolves the base text direction of blocks.
//
// A block's direction is the direction of its first strong character. Blocks
// with no strong character inherit the direction of the nearest preceding
// block, so a run of neutral lines stays aligned with the text above it.
package bidi

import (
	xbidi "golang.org/x/text/unicode/bidi"

	"github.com/sompylasar/draft-js/internal/engine/block"
)

// Direction is a base text direction.
type Direction int

const (
	// Neutral means no strong character was found.
	Neutral Direction = iota
	// LTR is left-to-right.
	LTR
	// RTL is right-to-left.
	RTL
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	default:
		return "NEUTRAL"
	}
}

// FirstStrong returns the direction of the first strongly typed rune in s,
// or Neutral.
func FirstStrong(s string) Direction {
	for _, r := range s {
		p, _ := xbidi.LookupRune(r)
		switch p.Class() {
		case xbidi.L:
			return LTR
		case xbidi.R, xbidi.AL:
			return RTL
		}
	}
	return Neutral
}

// Service resolves directions for a sequence of texts, remembering the last
// strong direction as the fallback for neutral text.
type Service struct {
	last Direction
}

// NewService creates a service whose initial fallback is def. A Neutral
// default falls back to LTR.
func NewService(def Direction) *Service {
	if def == Neutral {
		def = LTR
	}
	return &Service{last: def}
}

// Direction returns the direction of s and records it as the new fallback.
func (s *Service) Direction(text string) Direction {
	if d := FirstStrong(text); d != Neutral {
		s.last = d
	}
	return s.last
}

// DirectionMap maps block keys to resolved directions in document order.
type DirectionMap struct {
	keys []string
	dirs map[string]Direction
}

// NewDirectionMap resolves a direction for every block of bm. When the
// result equals prev, prev is returned so callers can detect no change by
// pointer.
func NewDirectionMap(bm *block.Map, prev *DirectionMap) *DirectionMap {
	svc := NewService(LTR)
	dm := &DirectionMap{
		keys: make([]string, 0, bm.Len()),
		dirs: make(map[string]Direction, bm.Len()),
	}
	bm.Each(func(_ int, b *block.Block) bool {
		dm.keys = append(dm.keys, b.Key())
		dm.dirs[b.Key()] = svc.Direction(b.Text())
		return true
	})
	if prev != nil && prev.Equal(dm) {
		return prev
	}
	return dm
}

// Get returns the direction of the block with key, or Neutral.
func (m *DirectionMap) Get(key string) Direction {
	if m == nil {
		return Neutral
	}
	return m.dirs[key]
}

// Len returns the number of blocks.
func (m *DirectionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the block keys in document order.
func (m *DirectionMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Equal reports whether two maps hold the same keys in the same order with
// the same directions.
func (m *DirectionMap) Equal(other *DirectionMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	for i, k := range m.keys {
		if other.keys[i] != k || other.dirs[k] != m.dirs[k] {
			return false
		}
	}
	return true
}
