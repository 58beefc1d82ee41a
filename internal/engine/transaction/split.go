package transaction

import (
	"fmt"
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// SplitBlock splits the block at the caret. The text after the caret moves
// to a new block with a fresh key, the block's type and depth, and empty
// data, inserted right after the original; the caret moves to its start.
//
// An empty list item is not split: it becomes an unstyled block at depth 0.
// In a tree document a block with children cannot be split.
func SplitBlock(cs *content.State, sel selection.State) (*content.State, error) {
	if err := requireCollapsed(sel); err != nil {
		return nil, err
	}
	b, err := cs.BlockOrErr(sel.AnchorKey)
	if err != nil {
		return nil, err
	}
	offset := sel.AnchorOffset
	if err := checkOffset(b, offset); err != nil {
		return nil, err
	}

	if b.Length() == 0 && b.Type().IsListItem() {
		return ModifyBlocks(cs, sel, func(b *block.Block) *block.Block {
			return b.With(block.WithType(block.Unstyled), block.WithDepth(0))
		})
	}
	if cs.IsTree() && b.HasChildren() {
		return nil, fmt.Errorf("%w: cannot split %q", ErrBlockHasChildren, b.Key())
	}

	above := b.With(block.WithText(b.TextSlice(0, offset), b.CharactersSlice(0, offset)))
	below := b.With(
		block.WithKey(cs.Keys().Generate()),
		block.WithText(b.TextSlice(offset, b.Length()), b.CharactersSlice(offset, b.Length())),
		block.WithData(nil),
	)

	order := cs.Blocks().Blocks()
	i := cs.Blocks().IndexOf(b.Key())
	order[i] = above
	order = slices.Insert(order, i+1, below)

	return cs.With(
		content.WithBlocks(block.NewMap(tree.Relink(order)...)),
		content.WithSelectionBefore(sel),
		content.WithSelectionAfter(sel.With(selection.Caret(below.Key(), 0))),
	), nil
}
