// Package history provides the undo/redo stacks of the editor state.
//
// History is snapshot based: each entry holds a complete, immutable
// content.State rather than a command to replay. Stacks are persistent
// linked lists, so pushing or popping returns a new Stack that shares its
// tail with the old one and an editor state can keep both.
//
// # Change Types
//
// Every pushed change is tagged with a ChangeType. Consecutive typing
// changes of the same type coalesce into one undo step; any other change
// starts a new one:
//
//	if history.MustBecomeBoundary(last, next) {
//	    undo = undo.Push(history.Entry{Content: current, ChangeType: next})
//	}
//
// # Bounding
//
// Stacks are unbounded by default. Truncate keeps the newest entries.
package history
