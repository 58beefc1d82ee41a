// Package character provides the interned per-character metadata attached to
// every rune of a block: its inline style set and optional entity key.
//
// Metadata values are created through a Pool, which returns the same pointer
// for semantically equal values. Two Metadata from the same pool are equal if
// and only if their pointers are equal.
package character

import "sync"

// Metadata is the immutable style/entity pair of a single character.
type Metadata struct {
	style  StyleSet
	entity string
}

// Style returns the inline style set.
func (m *Metadata) Style() StyleSet {
	if m == nil {
		return StyleSet{}
	}
	return m.style
}

// HasStyle reports whether the character carries style.
func (m *Metadata) HasStyle(style string) bool {
	return m.Style().Has(style)
}

// Entity returns the entity key, or "" when the character has none.
func (m *Metadata) Entity() string {
	if m == nil {
		return ""
	}
	return m.entity
}

type poolKey struct {
	style  string
	entity string
}

// Pool interns Metadata values. It is safe for concurrent use and never
// evicts; its size is bounded by the distinct combinations in use.
type Pool struct {
	mu    sync.Mutex
	items map[poolKey]*Metadata
	empty *Metadata
}

// NewPool creates a pool holding only the empty metadata.
func NewPool() *Pool {
	empty := &Metadata{}
	return &Pool{
		items: map[poolKey]*Metadata{{}: empty},
		empty: empty,
	}
}

// DefaultPool is the process-wide pool used when a document is not given
// its own.
var DefaultPool = NewPool()

// Empty returns the pool's metadata with no style and no entity.
func (p *Pool) Empty() *Metadata {
	return p.empty
}

// Create returns the pooled metadata for the given style and entity.
func (p *Pool) Create(style StyleSet, entity string) *Metadata {
	k := poolKey{style: style.Key(), entity: entity}

	p.mu.Lock()
	defer p.mu.Unlock()

	if m, ok := p.items[k]; ok {
		return m
	}
	m := &Metadata{style: style, entity: entity}
	p.items[k] = m
	return m
}

// ApplyStyle returns the pooled metadata with style added.
func (p *Pool) ApplyStyle(m *Metadata, style string) *Metadata {
	next := m.Style().Add(style)
	if m != nil && next.Equal(m.style) {
		return m
	}
	return p.Create(next, m.Entity())
}

// RemoveStyle returns the pooled metadata with style removed.
func (p *Pool) RemoveStyle(m *Metadata, style string) *Metadata {
	next := m.Style().Remove(style)
	if m != nil && next.Equal(m.style) {
		return m
	}
	return p.Create(next, m.Entity())
}

// ApplyEntity returns the pooled metadata with its entity replaced by key.
// An empty key clears the entity. The same pointer is returned when nothing
// changes.
func (p *Pool) ApplyEntity(m *Metadata, key string) *Metadata {
	if m != nil && m.entity == key {
		return m
	}
	return p.Create(m.Style(), key)
}

// Len returns the number of interned values.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Repeat returns a fresh slice holding n copies of m.
func Repeat(m *Metadata, n int) []*Metadata {
	if n <= 0 {
		return nil
	}
	out := make([]*Metadata, n)
	for i := range out {
		out[i] = m
	}
	return out
}
