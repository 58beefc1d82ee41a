package transaction

import (
	"fmt"
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// InsertionMode places a moved block relative to its target.
type InsertionMode string

// Insertion modes.
const (
	Before  InsertionMode = "before"
	After   InsertionMode = "after"
	Replace InsertionMode = "replace"
)

// MoveBlock moves the block key, with its subtree in a tree document, next
// to target. After places it following target's whole subtree, so when
// target has children BlockAfter(target) is target's first child rather
// than the moved block. The moved block takes target's parent. Moving a
// block next to itself or into its own subtree fails with ErrMoveToSelf; a
// block already in place keeps its order.
//
// SelectionBefore is the input's SelectionAfter; SelectionAfter is the
// same range moved into the moved block.
func MoveBlock(cs *content.State, key, target string, mode InsertionMode) (*content.State, error) {
	if mode == Replace {
		return nil, ErrReplaceUnsupported
	}
	if mode != Before && mode != After {
		return nil, fmt.Errorf("unknown insertion mode %q", mode)
	}
	if key == target {
		return nil, fmt.Errorf("%w: %q", ErrMoveToSelf, key)
	}
	bm := cs.Blocks()
	b, err := cs.BlockOrErr(key)
	if err != nil {
		return nil, err
	}
	t, err := cs.BlockOrErr(target)
	if err != nil {
		return nil, err
	}

	order := bm.Blocks()
	from := bm.IndexOf(key)
	to := tree.SubtreeEndIn(order, from)
	if ti := bm.IndexOf(target); ti >= from && ti < to {
		return nil, fmt.Errorf("%w: %q is within the subtree of %q", ErrMoveToSelf, target, key)
	}

	moved := slices.Clone(order[from:to])
	rest := slices.Concat(order[:from], order[to:])
	ti := slices.Index(rest, t)
	dest := ti
	if mode == After {
		dest = tree.SubtreeEndIn(rest, ti)
	}
	if b.ParentKey() != t.ParentKey() {
		moved[0] = b.With(block.WithParent(t.ParentKey()))
	}
	order = slices.Concat(rest[:dest], moved, rest[dest:])

	prev := cs.SelectionAfter()
	after := prev.With(
		selection.Anchor(key, min(prev.AnchorOffset, b.Length())),
		selection.Focus(key, min(prev.FocusOffset, b.Length())),
	)
	return cs.With(
		content.WithBlocks(block.NewMap(tree.Relink(order)...)),
		content.WithSelectionBefore(prev),
		content.WithSelectionAfter(after),
	), nil
}
