package block

import (
	"slices"
	"unicode/utf8"

	"github.com/sompylasar/draft-js/internal/engine/character"
)

// Option overrides a field when copying a block with With.
type Option func(*Block)

// With returns a copy of b with the options applied. b is unchanged.
func (b *Block) With(opts ...Option) *Block {
	c := *b
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// WithKey sets the key.
func WithKey(key string) Option {
	return func(b *Block) { b.key = key }
}

// WithType sets the block type.
func WithType(t Type) Option {
	return func(b *Block) { b.typ = t }
}

// WithDepth sets the depth, floored at zero.
func WithDepth(depth int) Option {
	return func(b *Block) { b.depth = max(depth, 0) }
}

// WithData sets the data map.
func WithData(data Data) Option {
	return func(b *Block) {
		if data == nil {
			data = Data{}
		}
		b.data = data
	}
}

// WithText sets the text together with its metadata. chars must hold one
// entry per rune of text.
func WithText(text string, chars []*character.Metadata) Option {
	return func(b *Block) {
		b.text = text
		b.length = utf8.RuneCountInString(text)
		b.chars = slices.Clip(chars)
	}
}

// WithCharacters replaces the metadata, keeping the text.
func WithCharacters(chars []*character.Metadata) Option {
	return func(b *Block) { b.chars = slices.Clip(chars) }
}

// WithParent sets the parent key of a tree node.
func WithParent(key string) Option {
	return func(b *Block) { b.parent = key }
}

// WithPrevSibling sets the previous sibling key of a tree node.
func WithPrevSibling(key string) Option {
	return func(b *Block) { b.prev = key }
}

// WithNextSibling sets the next sibling key of a tree node.
func WithNextSibling(key string) Option {
	return func(b *Block) { b.next = key }
}

// WithChildren sets the child keys of a tree node.
func WithChildren(keys []string) Option {
	return func(b *Block) {
		if len(keys) == 0 {
			b.children = nil
			return
		}
		b.children = slices.Clip(slices.Clone(keys))
	}
}

// WithTree switches the block between the flat and tree variants. Switching
// to flat clears all links.
func WithTree(tree bool) Option {
	return func(b *Block) {
		b.tree = tree
		if !tree {
			b.parent, b.prev, b.next, b.children = "", "", "", nil
		}
	}
}
