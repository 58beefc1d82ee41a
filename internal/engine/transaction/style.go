package transaction

import (
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

// ApplyEntity sets the entity of every character in sel to key; "" clears
// it.
func ApplyEntity(cs *content.State, sel selection.State, key string) (*content.State, error) {
	pool := cs.Pool()
	return mapRange(cs, sel, func(b *block.Block, start, end int) *block.Block {
		return mapCharacters(b, start, end, func(m *character.Metadata) *character.Metadata {
			return pool.ApplyEntity(m, key)
		})
	})
}

// ModifyInlineStyle adds or removes style on every character in sel.
func ModifyInlineStyle(cs *content.State, sel selection.State, style string, add bool) (*content.State, error) {
	pool := cs.Pool()
	return mapRange(cs, sel, func(b *block.Block, start, end int) *block.Block {
		return mapCharacters(b, start, end, func(m *character.Metadata) *character.Metadata {
			if add {
				return pool.ApplyStyle(m, style)
			}
			return pool.RemoveStyle(m, style)
		})
	})
}

// AdjustBlockDepth shifts the depth of every block in sel by adjustment,
// clamped to [0, maxDepth].
func AdjustBlockDepth(cs *content.State, sel selection.State, adjustment, maxDepth int) (*content.State, error) {
	return mapRange(cs, sel, func(b *block.Block, _, _ int) *block.Block {
		depth := min(max(b.Depth()+adjustment, 0), max(maxDepth, 0))
		if depth == b.Depth() {
			return b
		}
		return b.With(block.WithDepth(depth))
	})
}

// ModifyBlocks replaces every block in sel with fn's result. fn must keep
// the block's key and links.
func ModifyBlocks(cs *content.State, sel selection.State, fn func(*block.Block) *block.Block) (*content.State, error) {
	return mapRange(cs, sel, func(b *block.Block, _, _ int) *block.Block {
		return fn(b)
	})
}
