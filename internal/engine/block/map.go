package block

import "slices"

// Map is an immutable, ordered sequence of blocks with unique keys. Order
// is document order. Updates return a new Map sharing unchanged blocks.
type Map struct {
	blocks []*Block
	index  map[string]int
}

// NewMap builds a map from blocks in order. A later block with a duplicate
// key overwrites the earlier entry in place.
func NewMap(blocks ...*Block) *Map {
	m := &Map{
		blocks: make([]*Block, 0, len(blocks)),
		index:  make(map[string]int, len(blocks)),
	}
	for _, b := range blocks {
		if i, ok := m.index[b.key]; ok {
			m.blocks[i] = b
			continue
		}
		m.index[b.key] = len(m.blocks)
		m.blocks = append(m.blocks, b)
	}
	return m
}

// Len returns the number of blocks.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.blocks)
}

// Get returns the block for key, or nil.
func (m *Map) Get(key string) *Block {
	if m == nil {
		return nil
	}
	if i, ok := m.index[key]; ok {
		return m.blocks[i]
	}
	return nil
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	return m.Get(key) != nil
}

// IndexOf returns the position of key, or -1.
func (m *Map) IndexOf(key string) int {
	if m == nil {
		return -1
	}
	if i, ok := m.index[key]; ok {
		return i
	}
	return -1
}

// At returns the block at position i, or nil when out of range.
func (m *Map) At(i int) *Block {
	if i < 0 || i >= m.Len() {
		return nil
	}
	return m.blocks[i]
}

// First returns the first block, or nil when empty.
func (m *Map) First() *Block { return m.At(0) }

// Last returns the last block, or nil when empty.
func (m *Map) Last() *Block { return m.At(m.Len() - 1) }

// Keys returns the keys in order.
func (m *Map) Keys() []string {
	out := make([]string, m.Len())
	for i := range out {
		out[i] = m.blocks[i].key
	}
	return out
}

// Blocks returns the blocks in order as a fresh slice.
func (m *Map) Blocks() []*Block {
	if m == nil {
		return nil
	}
	return slices.Clone(m.blocks)
}

// Before returns the block preceding key, or nil.
func (m *Map) Before(key string) *Block {
	i := m.IndexOf(key)
	if i <= 0 {
		return nil
	}
	return m.blocks[i-1]
}

// After returns the block following key, or nil.
func (m *Map) After(key string) *Block {
	i := m.IndexOf(key)
	if i < 0 {
		return nil
	}
	return m.At(i + 1)
}

// KeyBefore returns the key preceding key, or "".
func (m *Map) KeyBefore(key string) string {
	if b := m.Before(key); b != nil {
		return b.key
	}
	return ""
}

// KeyAfter returns the key following key, or "".
func (m *Map) KeyAfter(key string) string {
	if b := m.After(key); b != nil {
		return b.key
	}
	return ""
}

// Range calls fn for blocks from startKey through endKey inclusive, in
// order, stopping early when fn returns false. It returns ErrNotFound when
// either key is absent.
func (m *Map) Range(startKey, endKey string, fn func(i int, b *Block) bool) error {
	si, ei := m.IndexOf(startKey), m.IndexOf(endKey)
	if si < 0 {
		return NotFound(startKey)
	}
	if ei < 0 {
		return NotFound(endKey)
	}
	for i := si; i <= ei; i++ {
		if !fn(i, m.blocks[i]) {
			break
		}
	}
	return nil
}

// Each calls fn for every block in order, stopping when fn returns false.
func (m *Map) Each(fn func(i int, b *Block) bool) {
	for i := 0; i < m.Len(); i++ {
		if !fn(i, m.blocks[i]) {
			return
		}
	}
}

// Set returns a map with b replacing the block of the same key, or with b
// appended when the key is new.
func (m *Map) Set(b *Block) *Map {
	if i := m.IndexOf(b.key); i >= 0 {
		if m.blocks[i] == b {
			return m
		}
		blocks := slices.Clone(m.blocks)
		blocks[i] = b
		return &Map{blocks: blocks, index: m.index}
	}
	return NewMap(append(m.Blocks(), b)...)
}

// Merge returns a map with every given block replacing or appending.
func (m *Map) Merge(blocks ...*Block) *Map {
	if len(blocks) == 0 {
		return m
	}
	appended := false
	out := m.Blocks()
	for _, b := range blocks {
		if i := m.IndexOf(b.key); i >= 0 {
			out[i] = b
		} else {
			appended = true
			out = append(out, b)
		}
	}
	if appended {
		return NewMap(out...)
	}
	return &Map{blocks: out, index: m.index}
}

// Delete returns a map without the given keys.
func (m *Map) Delete(keys ...string) *Map {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		if m.Has(k) {
			drop[k] = true
		}
	}
	if len(drop) == 0 {
		return m
	}
	out := make([]*Block, 0, m.Len()-len(drop))
	for _, b := range m.blocks {
		if !drop[b.key] {
			out = append(out, b)
		}
	}
	return NewMap(out...)
}

// MapBuilder accumulates blocks for a new Map.
type MapBuilder struct {
	blocks []*Block
}

// NewMapBuilder creates a builder with room for n blocks.
func NewMapBuilder(n int) *MapBuilder {
	return &MapBuilder{blocks: make([]*Block, 0, n)}
}

// Add appends blocks.
func (mb *MapBuilder) Add(blocks ...*Block) *MapBuilder {
	mb.blocks = append(mb.blocks, blocks...)
	return mb
}

// Len returns the number of blocks added so far.
func (mb *MapBuilder) Len() int { return len(mb.blocks) }

// Build returns the map.
func (mb *MapBuilder) Build() *Map {
	return NewMap(mb.blocks...)
}
