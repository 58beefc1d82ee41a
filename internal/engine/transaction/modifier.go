package transaction

import (
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

// The functions below compose the primitive transactions into the edits a
// host performs on user input.

// ReplaceText replaces the text in sel with text carrying style and entity.
func ReplaceText(cs *content.State, sel selection.State, text string, style character.StyleSet, entityKey string) (*content.State, error) {
	removed, err := removeWithEdges(cs, sel)
	if err != nil {
		return nil, err
	}
	meta := cs.Pool().Create(style, entityKey)
	return InsertText(removed, removed.SelectionAfter(), text, meta)
}

// Insert inserts text at the caret.
func Insert(cs *content.State, sel selection.State, text string, style character.StyleSet, entityKey string) (*content.State, error) {
	if err := requireCollapsed(sel); err != nil {
		return nil, err
	}
	return ReplaceText(cs, sel, text, style, entityKey)
}

// MoveText moves the content of removal to target, which is interpreted in
// the document before the removal.
func MoveText(cs *content.State, removal, target selection.State) (*content.State, error) {
	frag, err := Fragment(cs, removal)
	if err != nil {
		return nil, err
	}
	removed, err := Remove(cs, removal, Backward)
	if err != nil {
		return nil, err
	}
	return ReplaceWithFragment(removed, target, frag)
}

// ReplaceWithFragment replaces the text in sel with fragment.
func ReplaceWithFragment(cs *content.State, sel selection.State, fragment *block.Map) (*content.State, error) {
	removed, err := removeWithEdges(cs, sel)
	if err != nil {
		return nil, err
	}
	return InsertFragment(removed, removed.SelectionAfter(), fragment, ReplaceData)
}

// Remove deletes sel in direction dir. A deletion inside one block that
// starts on an entity is widened per the entity's mutability.
func Remove(cs *content.State, sel selection.State, dir Direction) (*content.State, error) {
	sel = sel.Normalize()
	s, err := resolve(cs, sel)
	if err != nil {
		return nil, err
	}
	if s.sameBlock {
		if key := s.start.EntityAt(s.startOff); key != "" && key == s.end.EntityAt(s.endOff-1) {
			widened, err := CharacterRemovalRange(cs, s.start, s.end, sel, dir)
			if err != nil {
				return nil, err
			}
			return RemoveRange(cs, widened)
		}
	}
	return removeWithEdges(cs, sel)
}

// Split splits the block at sel after removing its text.
func Split(cs *content.State, sel selection.State) (*content.State, error) {
	removed, err := removeWithEdges(cs, sel)
	if err != nil {
		return nil, err
	}
	return SplitBlock(removed, removed.SelectionAfter())
}

// ApplyInlineStyle adds style to the characters in sel.
func ApplyInlineStyle(cs *content.State, sel selection.State, style string) (*content.State, error) {
	return ModifyInlineStyle(cs, sel, style, true)
}

// RemoveInlineStyle removes style from the characters in sel.
func RemoveInlineStyle(cs *content.State, sel selection.State, style string) (*content.State, error) {
	return ModifyInlineStyle(cs, sel, style, false)
}

// SetBlockType sets the type of every block in sel and resets its depth.
func SetBlockType(cs *content.State, sel selection.State, t block.Type) (*content.State, error) {
	return ModifyBlocks(cs, sel, func(b *block.Block) *block.Block {
		if b.Type() == t && b.Depth() == 0 {
			return b
		}
		return b.With(block.WithType(t), block.WithDepth(0))
	})
}

// SetBlockData replaces the data of every block in sel.
func SetBlockData(cs *content.State, sel selection.State, data block.Data) (*content.State, error) {
	return ModifyBlocks(cs, sel, func(b *block.Block) *block.Block {
		return b.With(block.WithData(data))
	})
}

// MergeBlockData merges data into the data of every block in sel.
func MergeBlockData(cs *content.State, sel selection.State, data block.Data) (*content.State, error) {
	return ModifyBlocks(cs, sel, func(b *block.Block) *block.Block {
		return b.With(block.WithData(b.Data().Merge(data)))
	})
}

// ApplyEntityToRange sets entityKey on the characters in sel after
// stripping entities straddling its edges; "" removes entities.
func ApplyEntityToRange(cs *content.State, sel selection.State, entityKey string) (*content.State, error) {
	stripped, err := RemoveEntitiesAtEdges(cs, sel)
	if err != nil {
		return nil, err
	}
	return ApplyEntity(stripped, sel, entityKey)
}

func removeWithEdges(cs *content.State, sel selection.State) (*content.State, error) {
	stripped, err := RemoveEntitiesAtEdges(cs, sel)
	if err != nil {
		return nil, err
	}
	return RemoveRange(stripped, sel)
}
