package tree

import (
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/keys"
)

// Position selects which adjacent sibling UpdateAsSiblingsChild nests under.
type Position int

// Positions.
const (
	Previous Position = iota
	Next
)

func (p Position) String() string {
	if p == Next {
		return "next"
	}
	return "previous"
}

func finish(order []*block.Block) *block.Map {
	return block.NewMap(Relink(order)...)
}

func lookup(m *block.Map, key string) (*block.Block, int, error) {
	i := m.IndexOf(key)
	if i < 0 {
		return nil, -1, block.NotFound(key)
	}
	return m.At(i), i, nil
}

// CreateNewParent wraps the leaf key in a new empty parent that takes its
// place among its siblings. The parent copies the block's type and depth.
func CreateNewParent(m *block.Map, key string, gen keys.Generator) (*block.Map, error) {
	b, i, err := lookup(m, key)
	if err != nil {
		return nil, err
	}
	if b.HasChildren() {
		return nil, invalidOp("block %q is not a leaf", key)
	}
	parent := block.New(block.Config{
		Key:    gen.Generate(),
		Type:   b.Type(),
		Depth:  b.Depth(),
		Tree:   true,
		Parent: b.ParentKey(),
	})
	order := m.Blocks()
	order[i] = b.With(block.WithParent(parent.Key()))
	order = slices.Insert(order, i, parent)
	return finish(order), nil
}

// UpdateAsSiblingsChild nests key under its previous or next sibling, which
// must exist and have no text. Under the previous sibling it becomes the
// last child; under the next sibling it becomes the first child.
func UpdateAsSiblingsChild(m *block.Map, key string, pos Position) (*block.Map, error) {
	b, i, err := lookup(m, key)
	if err != nil {
		return nil, err
	}
	targetKey := b.PrevSiblingKey()
	if pos == Next {
		targetKey = b.NextSiblingKey()
	}
	target := m.Get(targetKey)
	if target == nil {
		return nil, invalidOp("block %q has no %s sibling", key, pos)
	}
	if target.Text() != "" {
		return nil, invalidOp("%s sibling %q of %q has text", pos, targetKey, key)
	}

	order := m.Blocks()
	order[i] = b.With(block.WithParent(targetKey))
	if pos == Next {
		end := subtreeEnd(order, i)
		order = moveSpan(order, i, end, end+1)
	}
	return finish(order), nil
}

// MergeBlocks moves every child of key's next sibling under key and removes
// that sibling. Both must have children.
func MergeBlocks(m *block.Map, key string) (*block.Map, error) {
	b, _, err := lookup(m, key)
	if err != nil {
		return nil, err
	}
	next := m.Get(b.NextSiblingKey())
	if next == nil {
		return nil, invalidOp("block %q has no next sibling", key)
	}
	if !b.HasChildren() || !next.HasChildren() {
		return nil, invalidOp("blocks %q and %q must both have children", key, next.Key())
	}

	order := make([]*block.Block, 0, m.Len()-1)
	for _, x := range m.Blocks() {
		switch {
		case x.Key() == next.Key():
			continue
		case x.ParentKey() == next.Key():
			x = x.With(block.WithParent(key))
		}
		order = append(order, x)
	}
	return finish(order), nil
}

// MoveChildUp promotes the first or last child key to a sibling of its
// parent: before the parent when it is the first child, after the parent's
// subtree when it is the last. A parent left without children is removed.
func MoveChildUp(m *block.Map, key string) (*block.Map, error) {
	b, i, err := lookup(m, key)
	if err != nil {
		return nil, err
	}
	parent := m.Get(b.ParentKey())
	if parent == nil {
		return nil, invalidOp("block %q has no parent", key)
	}
	kids := parent.ChildKeys()
	first := len(kids) > 0 && kids[0] == key
	last := len(kids) > 0 && kids[len(kids)-1] == key
	if !first && !last {
		return nil, invalidOp("block %q is neither the first nor the last child", key)
	}

	order := m.Blocks()
	order[i] = b.With(block.WithParent(parent.ParentKey()))
	if first {
		pi := indexOf(order, parent.Key())
		order = moveSpan(order, i, subtreeEnd(m.Blocks(), i), pi)
	}
	if len(kids) == 1 {
		order = slices.DeleteFunc(order, func(x *block.Block) bool { return x.Key() == parent.Key() })
	}
	return finish(order), nil
}

// SplitParent moves every sibling after key into a new empty block that
// follows key's parent and copies its type and depth. It returns the new
// block's key, or "" when key is already the last child.
func SplitParent(m *block.Map, key string, gen keys.Generator) (*block.Map, string, error) {
	b, i, err := lookup(m, key)
	if err != nil {
		return nil, "", err
	}
	parent := m.Get(b.ParentKey())
	if parent == nil {
		return nil, "", invalidOp("block %q has no parent", key)
	}
	if b.NextSiblingKey() == "" {
		return m, "", nil
	}
	wrapper := block.New(block.Config{
		Key:    gen.Generate(),
		Type:   parent.Type(),
		Depth:  parent.Depth(),
		Tree:   true,
		Parent: parent.ParentKey(),
	})

	kids := parent.ChildKeys()
	following := make(map[string]bool)
	if at := slices.Index(kids, key); at >= 0 {
		for _, k := range kids[at+1:] {
			following[k] = true
		}
	}

	order := m.Blocks()
	for j, x := range order {
		if following[x.Key()] {
			setParent(order, j, wrapper.Key())
		}
	}
	order = slices.Insert(order, subtreeEnd(order, i), wrapper)
	return finish(order), wrapper.Key(), nil
}
