// Package block provides the immutable text block and the ordered block map
// that forms a document body.
//
// A Block is either flat or a tree node. Tree nodes carry parent, sibling and
// children keys; those keys are logical references resolved through the
// owning Map, never pointers. Constructing or copying a tree node never
// checks global tree consistency.
//
// Offsets and lengths are measured in runes.
package block

import (
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/sompylasar/draft-js/internal/engine/character"
)

// Type is the block type tag.
type Type string

// Block types.
const (
	Unstyled          Type = "unstyled"
	Paragraph         Type = "paragraph"
	HeaderOne         Type = "header-one"
	HeaderTwo         Type = "header-two"
	HeaderThree       Type = "header-three"
	HeaderFour        Type = "header-four"
	HeaderFive        Type = "header-five"
	HeaderSix         Type = "header-six"
	UnorderedListItem Type = "unordered-list-item"
	OrderedListItem   Type = "ordered-list-item"
	Blockquote        Type = "blockquote"
	CodeBlock         Type = "code-block"
	Atomic            Type = "atomic"
)

// IsListItem reports whether t is an ordered or unordered list item.
func (t Type) IsListItem() bool {
	return t == UnorderedListItem || t == OrderedListItem
}

// Data is the opaque per-block data map. It is never modified in place.
type Data map[string]any

// Merge returns a new map with other laid over d.
func (d Data) Merge(other Data) Data {
	out := make(Data, len(d)+len(other))
	maps.Copy(out, d)
	maps.Copy(out, other)
	return out
}

// Block is an immutable text unit with per-character metadata.
type Block struct {
	key    string
	typ    Type
	text   string
	length int
	depth  int
	chars  []*character.Metadata
	data   Data

	tree     bool
	parent   string
	prev     string
	next     string
	children []string
}

// Config describes a block to construct.
type Config struct {
	Key   string
	Type  Type
	Text  string
	Depth int

	// Characters holds one entry per rune of Text. When nil it defaults to
	// the pool's empty metadata; a mismatched length is padded or truncated.
	Characters []*character.Metadata
	Data       Data

	// Pool supplies the empty metadata; DefaultPool when nil.
	Pool *character.Pool

	// Tree selects the tree variant; the link fields are ignored otherwise.
	Tree        bool
	Parent      string
	PrevSibling string
	NextSibling string
	Children    []string
}

// New constructs a block from cfg.
func New(cfg Config) *Block {
	pool := cfg.Pool
	if pool == nil {
		pool = character.DefaultPool
	}
	typ := cfg.Type
	if typ == "" {
		typ = Unstyled
	}
	depth := max(cfg.Depth, 0)
	n := utf8.RuneCountInString(cfg.Text)

	b := &Block{
		key:    cfg.Key,
		typ:    typ,
		text:   cfg.Text,
		length: n,
		depth:  depth,
		chars:  normalizeChars(cfg.Characters, n, pool.Empty()),
		data:   cfg.Data,
		tree:   cfg.Tree,
	}
	if b.data == nil {
		b.data = Data{}
	}
	if cfg.Tree {
		b.parent = cfg.Parent
		b.prev = cfg.PrevSibling
		b.next = cfg.NextSibling
		b.children = slices.Clip(slices.Clone(cfg.Children))
	}
	return b
}

func normalizeChars(chars []*character.Metadata, n int, empty *character.Metadata) []*character.Metadata {
	switch {
	case chars == nil:
		return character.Repeat(empty, n)
	case len(chars) == n:
		return slices.Clip(chars)
	case len(chars) > n:
		return slices.Clip(chars[:n])
	default:
		out := make([]*character.Metadata, n)
		copy(out, chars)
		for i := len(chars); i < n; i++ {
			out[i] = empty
		}
		return out
	}
}

// Key returns the block key.
func (b *Block) Key() string { return b.key }

// Type returns the block type.
func (b *Block) Type() Type { return b.typ }

// Text returns the block text.
func (b *Block) Text() string { return b.text }

// Length returns the text length in runes.
func (b *Block) Length() int { return b.length }

// Depth returns the list nesting depth.
func (b *Block) Depth() int { return b.depth }

// Data returns the block data. Callers must not modify it.
func (b *Block) Data() Data { return b.data }

// Characters returns the per-rune metadata. Callers must not modify it.
func (b *Block) Characters() []*character.Metadata { return b.chars }

// CharacterAt returns the metadata at offset, or nil when out of range.
func (b *Block) CharacterAt(offset int) *character.Metadata {
	if offset < 0 || offset >= len(b.chars) {
		return nil
	}
	return b.chars[offset]
}

// InlineStyleAt returns the style set at offset; empty when out of range.
func (b *Block) InlineStyleAt(offset int) character.StyleSet {
	return b.CharacterAt(offset).Style()
}

// EntityAt returns the entity key at offset, or "".
func (b *Block) EntityAt(offset int) string {
	return b.CharacterAt(offset).Entity()
}

// IsTree reports whether b is a tree node.
func (b *Block) IsTree() bool { return b.tree }

// ParentKey returns the parent key, or "" for a root or flat block.
func (b *Block) ParentKey() string { return b.parent }

// PrevSiblingKey returns the previous sibling key, or "".
func (b *Block) PrevSiblingKey() string { return b.prev }

// NextSiblingKey returns the next sibling key, or "".
func (b *Block) NextSiblingKey() string { return b.next }

// ChildKeys returns the ordered child keys. Callers must not modify it.
func (b *Block) ChildKeys() []string { return b.children }

// HasChildren reports whether b has any children.
func (b *Block) HasChildren() bool { return len(b.children) > 0 }

// TextSlice returns the text between rune offsets start and end.
func (b *Block) TextSlice(start, end int) string {
	return sliceRunes(b.text, b.length, start, end)
}

// CharactersSlice returns the metadata between start and end. The result
// is capacity-limited so appending to it never touches b.
func (b *Block) CharactersSlice(start, end int) []*character.Metadata {
	start, end = clampRange(start, end, len(b.chars))
	return b.chars[start:end:end]
}

func clampRange(start, end, n int) (int, int) {
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return start, end
}

func sliceRunes(s string, n, start, end int) string {
	start, end = clampRange(start, end, n)
	if len(s) == n {
		return s[start:end]
	}
	i, bs, be := 0, len(s), len(s)
	for pos := range s {
		if i == start {
			bs = pos
		}
		if i == end {
			be = pos
			break
		}
		i++
	}
	return s[bs:be]
}
