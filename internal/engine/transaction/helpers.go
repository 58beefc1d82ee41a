// Package transaction implements the pure functions that derive a new
// document snapshot from an old one: inserting and removing text, splitting
// and moving blocks, applying styles and entities, and re-nesting list items.
//
// Every transaction takes a content.State and a selection and returns a new
// content.State; the input is never modified. Unless documented otherwise
// the result records the input selection as SelectionBefore and the
// post-operation caret or range as SelectionAfter. Blocks a transaction does
// not touch are shared with the input.
//
// Precondition violations return sentinel errors from errors.go. Soft no-ops
// such as removing a collapsed range return the input unchanged.
package transaction

import (
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

func requireCollapsed(sel selection.State) error {
	if !sel.IsCollapsed() {
		return ErrSelectionNotCollapsed
	}
	return nil
}

func checkOffset(b *block.Block, offset int) error {
	if offset < 0 || offset > b.Length() {
		return offsetError(b.Key(), offset, b.Length())
	}
	return nil
}

// span resolves the start and end blocks of sel and validates its offsets.
type span struct {
	start, end       *block.Block
	startIdx, endIdx int
	startOff, endOff int
	startKey, endKey string
	sameBlock        bool
}

func resolve(cs *content.State, sel selection.State) (span, error) {
	var s span
	bm := cs.Blocks()
	s.startKey, s.endKey = sel.StartKey(), sel.EndKey()
	s.startOff, s.endOff = sel.StartOffset(), sel.EndOffset()
	s.startIdx, s.endIdx = bm.IndexOf(s.startKey), bm.IndexOf(s.endKey)
	if s.startIdx < 0 {
		return s, block.NotFound(s.startKey)
	}
	if s.endIdx < 0 {
		return s, block.NotFound(s.endKey)
	}
	if s.endIdx < s.startIdx {
		return s, ErrInvalidSelection
	}
	s.start, s.end = bm.At(s.startIdx), bm.At(s.endIdx)
	s.sameBlock = s.startIdx == s.endIdx
	if err := checkOffset(s.start, s.startOff); err != nil {
		return s, err
	}
	if err := checkOffset(s.end, s.endOff); err != nil {
		return s, err
	}
	if s.sameBlock && s.endOff < s.startOff {
		return s, ErrInvalidSelection
	}
	return s, nil
}

// bounds returns the in-block slice of block i covered by the span.
func (s span) bounds(i int, b *block.Block) (int, int) {
	start, end := 0, b.Length()
	if i == s.startIdx {
		start = s.startOff
	}
	if i == s.endIdx {
		end = s.endOff
	}
	return start, end
}

// mapRange applies fn to every block of sel's span and records sel as both
// selections. Blocks fn returns unchanged are shared.
func mapRange(cs *content.State, sel selection.State, fn func(b *block.Block, start, end int) *block.Block) (*content.State, error) {
	s, err := resolve(cs, sel)
	if err != nil {
		return nil, err
	}
	var changed []*block.Block
	for i := s.startIdx; i <= s.endIdx; i++ {
		b := cs.Blocks().At(i)
		start, end := s.bounds(i, b)
		if nb := fn(b, start, end); nb != b {
			changed = append(changed, nb)
		}
	}
	return cs.With(
		content.WithBlocks(cs.Blocks().Merge(changed...)),
		content.WithSelectionBefore(sel),
		content.WithSelectionAfter(sel),
	), nil
}

// mapCharacters rewrites characters [start, end) of b with fn, returning b
// itself when no character changes.
func mapCharacters(b *block.Block, start, end int, fn func(*character.Metadata) *character.Metadata) *block.Block {
	chars := b.Characters()
	var out []*character.Metadata
	for i := start; i < end && i < len(chars); i++ {
		m := fn(chars[i])
		if m == chars[i] {
			continue
		}
		if out == nil {
			out = slices.Clone(chars)
		}
		out[i] = m
	}
	if out == nil {
		return b
	}
	return b.With(block.WithCharacters(out))
}

// concatChars joins metadata runs into a fresh slice.
func concatChars(runs ...[]*character.Metadata) []*character.Metadata {
	return slices.Concat(runs...)
}

// splice returns b's text and metadata with [start, end) replaced.
func splice(b *block.Block, start, end int, text string, chars []*character.Metadata) (string, []*character.Metadata) {
	return b.TextSlice(0, start) + text + b.TextSlice(end, b.Length()),
		concatChars(b.CharactersSlice(0, start), chars, b.CharactersSlice(end, b.Length()))
}

// variant converts b to the flat or tree variant of cs.
func variant(cs *content.State, b *block.Block) *block.Block {
	if b.IsTree() == cs.IsTree() {
		return b
	}
	return b.With(block.WithTree(cs.IsTree()))
}
