package transaction

import (
	"strings"
	"unicode/utf8"
)

// Direction is the direction of a deletion.
type Direction int

// Directions.
const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// SegmentRemovalRange returns the range to delete when [selStart, selEnd)
// touches a segmented entity whose text starts at entityStart. The entity
// text is split into space separated segments; the space joins the
// following segment when deleting forward and the preceding one otherwise.
// Every segment the selection overlaps is removed, widened by one position
// when the removal touches exactly one edge of the entity.
func SegmentRemovalRange(selStart, selEnd int, text string, entityStart int, dir Direction) (int, int) {
	parts := strings.Split(text, " ")
	removalStart, removalEnd := -1, -1
	segStart := entityStart
	for i, part := range parts {
		n := utf8.RuneCountInString(part)
		if dir == Forward && i > 0 {
			n++
		}
		if dir == Backward && i < len(parts)-1 {
			n++
		}
		segEnd := segStart + n
		if selStart < segEnd && segStart < selEnd {
			if removalStart < 0 {
				removalStart = segStart
			}
			removalEnd = segEnd
		} else if removalStart >= 0 {
			break
		}
		segStart = segEnd
	}
	if removalStart < 0 {
		return selStart, selEnd
	}

	entityEnd := entityStart + utf8.RuneCountInString(text)
	atStart, atEnd := removalStart == entityStart, removalEnd == entityEnd
	if atStart != atEnd {
		if dir == Forward && removalEnd != entityEnd {
			removalEnd++
		}
		if dir == Backward && removalStart != entityStart {
			removalStart--
		}
	}
	return removalStart, removalEnd
}
