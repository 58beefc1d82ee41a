package transaction

import (
	"unicode/utf8"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

// InsertText inserts text at the caret, giving every inserted character
// meta (the pool's empty metadata when nil). The caret moves past the
// inserted text. Inserting "" returns cs unchanged.
func InsertText(cs *content.State, sel selection.State, text string, meta *character.Metadata) (*content.State, error) {
	if err := requireCollapsed(sel); err != nil {
		return nil, err
	}
	if text == "" {
		return cs, nil
	}
	b, err := cs.BlockOrErr(sel.AnchorKey)
	if err != nil {
		return nil, err
	}
	offset := sel.AnchorOffset
	if err := checkOffset(b, offset); err != nil {
		return nil, err
	}
	if meta == nil {
		meta = cs.Pool().Empty()
	}

	n := utf8.RuneCountInString(text)
	newText, chars := splice(b, offset, offset, text, character.Repeat(meta, n))
	nb := b.With(block.WithText(newText, chars))

	after := sel.With(
		selection.Anchor(sel.AnchorKey, offset+n),
		selection.Focus(sel.FocusKey, offset+n),
	)
	return cs.With(
		content.WithBlocks(cs.Blocks().Set(nb)),
		content.WithSelectionBefore(sel),
		content.WithSelectionAfter(after),
	), nil
}
