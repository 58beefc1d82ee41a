// Package engine provides EditorState, the immutable editor model, and
// Editor, a thread-safe handle that drives it.
//
// An EditorState ties the current document to its undo and redo history,
// the selection and the caches a renderer consumes: one decorator tree per
// block and the resolved text direction of every block.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - character: interned per-character style and entity metadata
//   - block: flat and tree blocks and the ordered block map
//   - entity: the entity registry
//   - selection: anchor/focus selections
//   - content: immutable document snapshots
//   - transaction: the edits, each returning a new document
//   - tree: nesting operations and validation for tree documents
//   - decorator: decoration strategies and the block tree generator
//   - bidi: per-block text direction
//   - history: change types and the persistent undo stack
//
// # Pushing Changes
//
// Every edit is a transaction followed by a push:
//
//	es := engine.CreateWithContent(content.FromText("Hello", nil))
//	cs, err := transaction.InsertText(es.Content(), es.Selection(), "!", nil)
//	if err != nil {
//	    return err
//	}
//	es = es.Push(cs, history.InsertCharacters, true)
//
// Consecutive typing of one kind (insert, backspace, delete) coalesces into
// a single undo step. Any other change type, a change of type, or a moved
// selection starts a new step.
//
// # Caches
//
// Set is the only place caches are rebuilt. When content changes only the
// blocks whose identity changed get a new decorator tree; when the decorator
// changes only blocks whose decorations differ do.
//
// # Thread Safety
//
// EditorState values are immutable and may be shared freely. Editor guards
// its current state with a read-write mutex and adds undo groups:
//
//	e := engine.New(nil)
//	err := e.Transaction("paste", func() error {
//	    if err := e.InsertText("a"); err != nil {
//	        return err
//	    }
//	    return e.SplitBlock()
//	})
package engine
