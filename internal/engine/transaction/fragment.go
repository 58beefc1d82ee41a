package transaction

import (
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// DataMode selects how InsertFragment combines block data when a fragment
// block merges into an existing block.
type DataMode int

// Data modes.
const (
	// ReplaceData uses the fragment block's data.
	ReplaceData DataMode = iota
	// MergeData overlays the existing block's data on the fragment's.
	MergeData
)

// Fragment copies the blocks covered by sel, trimmed to the selection, with
// fresh keys. Non-mutable entities straddling the edges are excluded.
func Fragment(cs *content.State, sel selection.State) (*block.Map, error) {
	stripped, err := RemoveEntitiesAtEdges(cs, sel)
	if err != nil {
		return nil, err
	}
	s, err := resolve(stripped, sel)
	if err != nil {
		return nil, err
	}

	bm := stripped.Blocks()
	out := make([]*block.Block, 0, s.endIdx-s.startIdx+1)
	for i := s.startIdx; i <= s.endIdx; i++ {
		b := bm.At(i)
		start, end := s.bounds(i, b)
		if start != 0 || end != b.Length() {
			b = b.With(block.WithText(b.TextSlice(start, end), b.CharactersSlice(start, end)))
		}
		out = append(out, b)
	}
	frag := block.RandomizeKeys(block.NewMap(out...), stripped.Keys())
	if stripped.IsTree() {
		frag = tree.RelinkMap(frag)
	}
	return frag, nil
}

// InsertFragment inserts fragment at the caret. Fragment blocks are given
// fresh keys. A single block fragment is merged into the target block. A
// longer fragment splits the target: its head joins the text before the
// caret and its tail the text after, with the caret at the end of the
// inserted tail text. In a tree document a fragment inserted at a block
// with children is placed after that block's subtree.
func InsertFragment(cs *content.State, sel selection.State, fragment *block.Map, mode DataMode) (*content.State, error) {
	if err := requireCollapsed(sel); err != nil {
		return nil, err
	}
	target, err := cs.BlockOrErr(sel.AnchorKey)
	if err != nil {
		return nil, err
	}
	offset := sel.AnchorOffset
	if err := checkOffset(target, offset); err != nil {
		return nil, err
	}
	if fragment.Len() == 0 {
		return cs, nil
	}

	frag := block.RandomizeKeys(fragment, cs.Keys()).Blocks()
	for i, b := range frag {
		frag[i] = variant(cs, b)
		if cs.IsTree() && frag[i].ParentKey() == "" {
			frag[i] = frag[i].With(block.WithParent(target.ParentKey()))
		}
	}

	var (
		bm    *block.Map
		caret selection.State
	)
	switch {
	case cs.IsTree() && target.HasChildren():
		order := cs.Blocks().Blocks()
		at := tree.SubtreeEndIn(order, slices.Index(order, target))
		bm = block.NewMap(tree.Relink(slices.Insert(order, at, frag...))...)
		last := frag[len(frag)-1]
		caret = sel.With(selection.Caret(last.Key(), last.Length()))
	case len(frag) == 1:
		bm, caret = mergeFragmentBlock(cs, sel, target, frag[0], mode)
	default:
		bm, caret = spliceFragment(cs, sel, target, frag)
	}
	return cs.With(
		content.WithBlocks(bm),
		content.WithSelectionBefore(sel),
		content.WithSelectionAfter(caret),
	), nil
}

func mergeFragmentBlock(cs *content.State, sel selection.State, target, frag *block.Block, mode DataMode) (*block.Map, selection.State) {
	offset := sel.AnchorOffset
	text, chars := splice(target, offset, offset, frag.Text(), frag.Characters())

	typ := target.Type()
	if target.Text() != "" && typ == block.Unstyled {
		typ = frag.Type()
	}
	data := frag.Data()
	if mode == MergeData {
		data = frag.Data().Merge(target.Data())
	}

	nb := target.With(block.WithText(text, chars), block.WithType(typ), block.WithData(data))
	return cs.Blocks().Set(nb), sel.With(selection.Caret(target.Key(), offset+frag.Length()))
}

func spliceFragment(cs *content.State, sel selection.State, target *block.Block, frag []*block.Block) (*block.Map, selection.State) {
	offset := sel.AnchorOffset
	prefix, prefixChars := target.TextSlice(0, offset), target.CharactersSlice(0, offset)
	suffix, suffixChars := target.TextSlice(offset, target.Length()), target.CharactersSlice(offset, target.Length())

	head, tail := frag[0], frag[len(frag)-1]
	var blocks []*block.Block
	if cs.IsTree() && head.HasChildren() {
		blocks = append(blocks, target.With(block.WithText(prefix, prefixChars)))
		blocks = append(blocks, frag[:len(frag)-1]...)
	} else {
		typ := target.Type()
		if prefix == "" {
			typ = head.Type()
		}
		blocks = append(blocks, target.With(
			block.WithText(prefix+head.Text(), concatChars(prefixChars, head.Characters())),
			block.WithType(typ),
			block.WithData(head.Data()),
		))
		blocks = append(blocks, frag[1 : len(frag)-1]...)
	}
	blocks = append(blocks, tail.With(
		block.WithText(tail.Text()+suffix, concatChars(tail.Characters(), suffixChars)),
	))

	order := cs.Blocks().Blocks()
	i := slices.Index(order, target)
	order = slices.Concat(order[:i], blocks, order[i+1:])
	return block.NewMap(tree.Relink(order)...), sel.With(selection.Caret(tail.Key(), tail.Length()))
}
