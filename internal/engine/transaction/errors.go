package transaction

import (
	"errors"
	"fmt"

	"github.com/sompylasar/draft-js/internal/engine/block"
)

// Errors returned by transactions. Lookup failures wrap block.ErrNotFound
// or entity.ErrNotFound.
var (
	// ErrSelectionNotCollapsed is returned by operations that need a caret.
	ErrSelectionNotCollapsed = errors.New("selection must be collapsed")

	// ErrInvalidSelection is returned when a selection's edges are out of
	// document order.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrOffsetOutOfRange is returned when an offset exceeds a block's length.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrBlockNotFound aliases block.ErrNotFound.
	ErrBlockNotFound = block.ErrNotFound

	// ErrMoveToSelf is returned when a block would be moved next to itself
	// or into its own subtree.
	ErrMoveToSelf = errors.New("block cannot be moved next to itself")

	// ErrReplaceUnsupported is returned for the replace insertion mode.
	ErrReplaceUnsupported = errors.New("replacing blocks is not supported")

	// ErrBlockHasChildren is returned when a text operation targets a
	// container block in a tree document.
	ErrBlockHasChildren = errors.New("block has children")
)

func offsetError(key string, offset, length int) error {
	return fmt.Errorf("%w: offset %d in block %q of length %d", ErrOffsetOutOfRange, offset, key, length)
}
