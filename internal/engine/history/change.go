package history

// ChangeType tags the kind of edit that produced a content snapshot.
type ChangeType string

// Change types.
const (
	AdjustDepth        ChangeType = "adjust-depth"
	ApplyEntity        ChangeType = "apply-entity"
	BackspaceCharacter ChangeType = "backspace-character"
	ChangeBlockData    ChangeType = "change-block-data"
	ChangeBlockType    ChangeType = "change-block-type"
	ChangeInlineStyle  ChangeType = "change-inline-style"
	MoveBlock          ChangeType = "move-block"
	DeleteCharacter    ChangeType = "delete-character"
	InsertCharacters   ChangeType = "insert-characters"
	InsertFragment     ChangeType = "insert-fragment"
	Redo               ChangeType = "redo"
	RemoveRange        ChangeType = "remove-range"
	SpellcheckChange   ChangeType = "spellcheck-change"
	SplitBlock         ChangeType = "split-block"
	Undo               ChangeType = "undo"
)

// IsTyping reports whether consecutive changes of type t coalesce.
func (t ChangeType) IsTyping() bool {
	switch t {
	case InsertCharacters, BackspaceCharacter, DeleteCharacter:
		return true
	}
	return false
}

// PreservesInlineStyleOverride reports whether a pending inline style
// override survives a change of type t.
func (t ChangeType) PreservesInlineStyleOverride() bool {
	switch t {
	case AdjustDepth, ChangeBlockType, SplitBlock:
		return true
	}
	return false
}

// MustBecomeBoundary reports whether a change of type next following one of
// type last starts a new undo step.
func MustBecomeBoundary(last, next ChangeType) bool {
	return next != last || !next.IsTyping()
}
