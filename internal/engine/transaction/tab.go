package transaction

import (
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// Tab indents the list item under a single-block selection by one level,
// or outdents it when shift is set. Depth stays within [0, maxDepth].
// Selections spanning blocks and non-list blocks are left alone; in that
// case cs is returned unchanged.
//
// In a flat document an item indents only below another list item and at
// most one level deeper than it.
//
// In a tree document indenting also nests the item under an adjacent
// container, or a new one, and outdenting lifts it out of its parent.
func Tab(cs *content.State, sel selection.State, shift bool, maxDepth int) (*content.State, error) {
	key := sel.StartKey()
	if key != sel.EndKey() {
		return cs, nil
	}
	b, err := cs.BlockOrErr(key)
	if err != nil {
		return nil, err
	}
	if !b.Type().IsListItem() {
		return cs, nil
	}
	if !shift && !cs.IsTree() {
		above := cs.BlockBefore(key)
		if above == nil || !above.Type().IsListItem() {
			return cs, nil
		}
		maxDepth = min(above.Depth()+1, maxDepth)
	}
	if !shift && b.Depth() >= maxDepth {
		return cs, nil
	}
	if shift && b.Depth() == 0 && b.ParentKey() == "" {
		return cs, nil
	}

	adjustment := 1
	next := cs
	if shift {
		adjustment = -1
	}
	if cs.IsTree() {
		if (shift && b.ParentKey() == "") || (!shift && b.PrevSiblingKey() == "") {
			return cs, nil
		}
		var bm *block.Map
		if shift {
			bm, err = outdent(cs, key)
		} else {
			bm, err = indent(cs, key)
		}
		if err != nil {
			return nil, err
		}
		next = cs.With(content.WithBlocks(bm))
	}
	return AdjustBlockDepth(next, sel, adjustment, maxDepth)
}

func isContainer(b *block.Block) bool {
	return b != nil && b.HasChildren()
}

func indent(cs *content.State, key string) (*block.Map, error) {
	m := cs.Blocks()
	b := m.Get(key)
	prev := m.Get(b.PrevSiblingKey())
	next := m.Get(b.NextSiblingKey())
	switch {
	case isContainer(prev):
		m, err := tree.UpdateAsSiblingsChild(m, key, tree.Previous)
		if err != nil || !isContainer(next) {
			return m, err
		}
		return tree.MergeBlocks(m, prev.Key())
	case isContainer(next):
		return tree.UpdateAsSiblingsChild(m, key, tree.Next)
	default:
		return tree.CreateNewParent(m, key, cs.Keys())
	}
}

func outdent(cs *content.State, key string) (*block.Map, error) {
	m := cs.Blocks()
	b := m.Get(key)
	parentKey := b.ParentKey()
	parent := m.Get(parentKey)
	if parent == nil {
		return nil, block.NotFound(parentKey)
	}

	var err error
	kids := parent.ChildKeys()
	if kids[0] != key && kids[len(kids)-1] != key {
		if m, _, err = tree.SplitParent(m, key, cs.Keys()); err != nil {
			return nil, err
		}
	}
	if m, err = tree.MoveChildUp(m, key); err != nil {
		return nil, err
	}

	// A container left leading its old parent moves up beside it.
	for {
		p := m.Get(parentKey)
		if !isContainer(p) {
			break
		}
		first := m.Get(p.ChildKeys()[0])
		if !isContainer(first) {
			break
		}
		if m, err = tree.MoveChildUp(m, first.Key()); err != nil {
			return nil, err
		}
	}
	return mergeAdjacentContainers(m, key)
}

// mergeAdjacentContainers joins neighbouring containers of the same type
// among key's siblings.
func mergeAdjacentContainers(m *block.Map, key string) (*block.Map, error) {
	for {
		b := m.Get(key)
		first := b
		for p := m.Get(first.PrevSiblingKey()); p != nil; p = m.Get(first.PrevSiblingKey()) {
			first = p
		}
		merged := false
		for cur := first; cur != nil; cur = m.Get(cur.NextSiblingKey()) {
			next := m.Get(cur.NextSiblingKey())
			if isContainer(cur) && isContainer(next) && cur.Type() == next.Type() {
				var err error
				if m, err = tree.MergeBlocks(m, cur.Key()); err != nil {
					return nil, err
				}
				merged = true
				break
			}
		}
		if !merged {
			return m, nil
		}
	}
}
