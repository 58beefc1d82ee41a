package transaction

import (
	"fmt"
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

// RemoveEntitiesAtEdges strips non-mutable entities that straddle either
// edge of sel. An entity straddles an offset when the characters on both
// sides of it carry it; the entity is then cleared from its whole range in
// that block, since a partial edit would corrupt it.
func RemoveEntitiesAtEdges(cs *content.State, sel selection.State) (*content.State, error) {
	s, err := resolve(cs, sel)
	if err != nil {
		return nil, err
	}
	start, err := removeEntityAt(cs, s.start, s.startOff)
	if err != nil {
		return nil, err
	}
	end := s.end
	if s.sameBlock {
		end = start
	}
	end, err = removeEntityAt(cs, end, s.endOff)
	if err != nil {
		return nil, err
	}

	var changed []*block.Block
	if s.sameBlock {
		if end != s.start {
			changed = append(changed, end)
		}
	} else {
		if start != s.start {
			changed = append(changed, start)
		}
		if end != s.end {
			changed = append(changed, end)
		}
	}
	return cs.With(
		content.WithBlocks(cs.Blocks().Merge(changed...)),
		content.WithSelectionBefore(sel),
		content.WithSelectionAfter(sel),
	), nil
}

func removeEntityAt(cs *content.State, b *block.Block, offset int) (*block.Block, error) {
	key := b.EntityAt(offset - 1)
	if key == "" || key != b.EntityAt(offset) {
		return b, nil
	}
	e, err := cs.Entity(key)
	if err != nil {
		return nil, err
	}
	if e.Mutability() == entity.Mutable {
		return b, nil
	}

	var r block.Range
	found := false
	for _, er := range b.EntityRanges(key) {
		if er.Start <= offset && er.End >= offset {
			r, found = er, true
		}
	}
	if !found {
		return b, nil
	}
	pool := cs.Pool()
	return mapCharacters(b, r.Start, r.End, func(m *character.Metadata) *character.Metadata {
		return pool.ApplyEntity(m, "")
	}), nil
}

// CharacterRemovalRange widens a deletion of sel, whose edges lie in
// startBlock and endBlock, so that it does not leave partial entities
// behind. Mutable entities never widen the range; immutable entities are
// removed whole; segmented entities lose whole segments. sel must be
// forward.
func CharacterRemovalRange(cs *content.State, startBlock, endBlock *block.Block, sel selection.State, dir Direction) (selection.State, error) {
	startKey := startBlock.EntityAt(sel.StartOffset())
	endKey := endBlock.EntityAt(sel.EndOffset() - 1)

	switch {
	case startKey == "" && endKey == "":
		return sel, nil
	case startKey != "" && startKey == endKey:
		return EntityRemovalRange(cs, startBlock, sel, dir, startKey, true, true)
	case startKey != "" && endKey != "":
		startSel, err := EntityRemovalRange(cs, startBlock, sel, dir, startKey, false, true)
		if err != nil {
			return sel, err
		}
		endSel, err := EntityRemovalRange(cs, endBlock, sel, dir, endKey, false, false)
		if err != nil {
			return sel, err
		}
		return sel.With(
			selection.Anchor(sel.AnchorKey, startSel.AnchorOffset),
			selection.Focus(sel.FocusKey, endSel.FocusOffset),
			selection.Backward(false),
		), nil
	case startKey != "":
		startSel, err := EntityRemovalRange(cs, startBlock, sel, dir, startKey, false, true)
		if err != nil {
			return sel, err
		}
		return sel.With(selection.Anchor(sel.AnchorKey, startSel.StartOffset()), selection.Backward(false)), nil
	default:
		endSel, err := EntityRemovalRange(cs, endBlock, sel, dir, endKey, false, false)
		if err != nil {
			return sel, err
		}
		return sel.With(selection.Focus(sel.FocusKey, endSel.EndOffset()), selection.Backward(false)), nil
	}
}

// EntityRemovalRange returns the offsets to delete from b for entity key
// touching sel. within reports whether the whole selection lies inside the
// entity; atStart selects which edge of sel the entity touches.
func EntityRemovalRange(cs *content.State, b *block.Block, sel selection.State, dir Direction, key string, within, atStart bool) (selection.State, error) {
	start, end := sel.StartOffset(), sel.EndOffset()
	e, err := cs.Entity(key)
	if err != nil {
		return sel, err
	}
	if e.Mutability() == entity.Mutable {
		return sel, nil
	}

	side := end
	if atStart {
		side = start
	}
	ranges := slices.DeleteFunc(b.EntityRanges(key), func(r block.Range) bool {
		return side > r.End || side < r.Start
	})
	if len(ranges) != 1 {
		return sel, fmt.Errorf("%w: %d ranges of entity %s at offset %d in block %q",
			ErrInvalidSelection, len(ranges), key, side, b.Key())
	}
	r := ranges[0]

	if e.Mutability() == entity.Immutable {
		return sel.With(
			selection.Anchor(sel.AnchorKey, r.Start),
			selection.Focus(sel.FocusKey, r.End),
			selection.Backward(false),
		), nil
	}

	if !within {
		if atStart {
			end = r.End
		} else {
			start = r.Start
		}
	}
	rs, re := SegmentRemovalRange(start, end, b.TextSlice(r.Start, r.End), r.Start, dir)
	return sel.With(
		selection.Anchor(sel.AnchorKey, rs),
		selection.Focus(sel.FocusKey, re),
		selection.Backward(false),
	), nil
}
