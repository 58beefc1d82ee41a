package transaction

import (
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// RemoveRange deletes the text covered by sel. Across blocks the start
// block keeps its prefix followed by the end block's suffix and the blocks
// in between are removed. A collapsed selection returns cs unchanged.
//
// In a tree document a block whose subtree extends past the end of the
// range survives with its remaining children, and blocks whose parent was
// removed move under their nearest surviving ancestor. When the start block
// keeps children of its own the end block's suffix stays in the end block
// and the caret lands at its start.
func RemoveRange(cs *content.State, sel selection.State) (*content.State, error) {
	if sel.IsCollapsed() {
		return cs, nil
	}
	s, err := resolve(cs, sel)
	if err != nil {
		return nil, err
	}

	caret := sel.With(selection.Caret(s.startKey, s.startOff))
	suffix, suffixChars := s.end.TextSlice(s.endOff, s.end.Length()), s.end.CharactersSlice(s.endOff, s.end.Length())

	var bm *block.Map
	switch {
	case s.sameBlock:
		text, chars := splice(s.start, s.startOff, s.endOff, "", nil)
		bm = cs.Blocks().Set(s.start.With(block.WithText(text, chars)))
	case !cs.IsTree():
		text, chars := splice(s.start, s.startOff, s.start.Length(), suffix, suffixChars)
		bm = cs.Blocks().Delete(cs.Blocks().Keys()[s.startIdx+1 : s.endIdx+1]...)
		bm = bm.Set(s.start.With(block.WithText(text, chars)))
	default:
		bm, caret = removeTreeRange(cs.Blocks(), s, caret)
	}

	return cs.With(
		content.WithBlocks(bm),
		content.WithSelectionBefore(sel),
		content.WithSelectionAfter(caret),
	), nil
}

func removeTreeRange(m *block.Map, s span, caret selection.State) (*block.Map, selection.State) {
	order := m.Blocks()
	last := s.endIdx + 1

	removed := make(map[string]bool)
	for j := s.startIdx + 1; j <= s.endIdx; j++ {
		if tree.SubtreeEndIn(order, j) <= last {
			removed[order[j].Key()] = true
		}
	}
	startKeepsChildren := tree.SubtreeEndIn(order, s.startIdx) > last
	suffix := s.end.TextSlice(s.endOff, s.end.Length())
	suffixChars := s.end.CharactersSlice(s.endOff, s.end.Length())

	prefix, prefixChars := s.start.TextSlice(0, s.startOff), s.start.CharactersSlice(0, s.startOff)
	var start, end *block.Block
	switch {
	case !removed[s.endKey]:
		start = s.start.With(block.WithText(prefix, prefixChars))
	case startKeepsChildren && suffix != "":
		delete(removed, s.endKey)
		start = s.start.With(block.WithText(prefix, prefixChars))
		end = s.end.With(block.WithText(suffix, suffixChars))
		caret = caret.With(selection.Caret(s.endKey, 0))
	default:
		start = s.start.With(block.WithText(prefix+suffix, concatChars(prefixChars, suffixChars)))
	}

	parents := make(map[string]string, len(order))
	for _, b := range order {
		parents[b.Key()] = b.ParentKey()
	}
	survivor := func(key string) string {
		for steps := 0; key != "" && removed[key] && steps <= len(order); steps++ {
			key = parents[key]
		}
		return key
	}

	out := make([]*block.Block, 0, len(order)-len(removed))
	for i, b := range order {
		switch {
		case removed[b.Key()]:
			continue
		case i == s.startIdx:
			b = start
		case end != nil && i == s.endIdx:
			b = end
		}
		if p := b.ParentKey(); removed[p] {
			b = b.With(block.WithParent(survivor(p)))
		}
		out = append(out, b)
	}
	return block.NewMap(tree.Relink(out)...), caret
}
