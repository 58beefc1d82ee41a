package engine

import "errors"

// Errors returned by Editor operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty or undo is disabled.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty or undo is disabled.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrReadOnly indicates an operation was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")

	// ErrNoGroup indicates EndUndoGroup or CancelUndoGroup without a matching
	// BeginUndoGroup.
	ErrNoGroup = errors.New("no undo group in progress")
)
