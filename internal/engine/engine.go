package engine

import (
	"sync"

	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/history"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/transaction"
)

// EditFunc computes new content from the current content and selection.
type EditFunc func(cs *content.State, sel selection.State) (*content.State, error)

// group marks an open undo group.
type group struct {
	name  string
	start *EditorState
}

// Editor is a mutable, thread-safe handle on a sequence of EditorStates.
// It serializes edits, groups pushes into single undo steps and reports
// empty history as errors. The states it hands out are immutable and may
// be used after the Editor moves on.
type Editor struct {
	mu sync.RWMutex

	state    *EditorState
	readOnly bool
	groups   []group
}

// New creates an Editor over cs; an empty document when cs is nil.
func New(cs *content.State, opts ...Option) *Editor {
	var es *EditorState
	if cs == nil {
		es = CreateEmpty(opts...)
	} else {
		es = CreateWithContent(cs, opts...)
	}
	return &Editor{state: es, readOnly: es.cfg.readOnly}
}

// ============================================================================
// Read Operations
// ============================================================================

// State returns the current editor state.
func (e *Editor) State() *EditorState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Content returns the current document.
func (e *Editor) Content() *content.State {
	return e.State().Content()
}

// Selection returns the current selection.
func (e *Editor) Selection() selection.State {
	return e.State().Selection()
}

// Text returns the document text with blocks joined by newlines.
func (e *Editor) Text() string {
	return e.State().Content().PlainText("\n")
}

// IsReadOnly reports whether edits are rejected.
func (e *Editor) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Write Operations
// ============================================================================

// Apply runs fn on the current content and selection and pushes the result
// as a change of type changeType.
func (e *Editor) Apply(changeType history.ChangeType, fn EditFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(changeType, fn)
}

func (e *Editor) applyLocked(changeType history.ChangeType, fn EditFunc) error {
	if e.readOnly {
		return ErrReadOnly
	}
	cs, err := fn(e.state.Content(), e.state.Selection())
	if err != nil {
		return err
	}
	e.state = e.state.Push(cs, changeType, true)
	return nil
}

// InsertText replaces the selection with text in the current inline style.
func (e *Editor) InsertText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	style := e.state.CurrentInlineStyle()
	return e.applyLocked(history.InsertCharacters, func(cs *content.State, sel selection.State) (*content.State, error) {
		return transaction.ReplaceText(cs, sel, text, style, "")
	})
}

// Delete removes the selection, or one character in direction dir when the
// selection is collapsed.
func (e *Editor) Delete(dir transaction.Direction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	changeType := history.RemoveRange
	sel := e.state.Selection()
	if sel.IsCollapsed() {
		changeType = history.BackspaceCharacter
		if dir == transaction.Forward {
			changeType = history.DeleteCharacter
		}
		sel = characterSelection(e.state.Content(), sel, dir)
		if sel.IsCollapsed() {
			return nil
		}
	}
	return e.applyLocked(changeType, func(cs *content.State, _ selection.State) (*content.State, error) {
		return transaction.Remove(cs, sel, dir)
	})
}

// characterSelection extends a caret over the adjacent character, or across
// the block boundary at either end of a block.
func characterSelection(cs *content.State, sel selection.State, dir transaction.Direction) selection.State {
	b := cs.Block(sel.AnchorKey)
	if b == nil {
		return sel
	}
	offset := sel.AnchorOffset
	if dir == transaction.Forward {
		if offset < b.Length() {
			return selection.Range(b.Key(), offset, b.Key(), offset+1)
		}
		if next := cs.BlockAfter(b.Key()); next != nil {
			return selection.Range(b.Key(), offset, next.Key(), 0)
		}
		return sel
	}
	if offset > 0 {
		return selection.Range(b.Key(), offset-1, b.Key(), offset)
	}
	if prev := cs.BlockBefore(b.Key()); prev != nil {
		return selection.Range(prev.Key(), prev.Length(), b.Key(), 0)
	}
	return sel
}

// SplitBlock splits the current block at the caret.
func (e *Editor) SplitBlock() error {
	return e.Apply(history.SplitBlock, transaction.Split)
}

// ToggleInlineStyle adds style to the selection, or removes it when the
// selection start already carries it. A caret toggles the override instead.
func (e *Editor) ToggleInlineStyle(style string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	current := e.state.CurrentInlineStyle()
	if e.state.Selection().IsCollapsed() {
		var next character.StyleSet
		if current.Has(style) {
			next = current.Remove(style)
		} else {
			next = current.Add(style)
		}
		e.state = e.state.SetInlineStyleOverride(next)
		return nil
	}
	return e.applyLocked(history.ChangeInlineStyle, func(cs *content.State, sel selection.State) (*content.State, error) {
		if current.Has(style) {
			return transaction.RemoveInlineStyle(cs, sel, style)
		}
		return transaction.ApplyInlineStyle(cs, sel, style)
	})
}

// Tab indents or, with shift, outdents the list item under the selection.
func (e *Editor) Tab(maxDepth int, shift bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	next, err := e.state.Tab(maxDepth, shift)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// Select accepts sel as the new selection.
func (e *Editor) Select(sel selection.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = e.state.AcceptSelection(sel)
}

// Update replaces the state with fn applied to it, for operations not
// covered by the Editor methods.
func (e *Editor) Update(fn func(*EditorState) *EditorState) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	e.state = fn(e.state)
	return nil
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last change.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if !e.state.AllowUndo() || e.state.UndoStack().IsEmpty() {
		return ErrNothingToUndo
	}
	e.state = e.state.Undo()
	return nil
}

// Redo redoes the last undone change.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if !e.state.AllowUndo() || e.state.RedoStack().IsEmpty() {
		return ErrNothingToRedo
	}
	e.state = e.state.Redo()
	return nil
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	return e.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	return e.RedoCount() > 0
}

// UndoCount returns the number of available undo steps.
func (e *Editor) UndoCount() int {
	return e.State().UndoStack().Len()
}

// RedoCount returns the number of available redo steps.
func (e *Editor) RedoCount() int {
	return e.State().RedoStack().Len()
}

// History returns info about the undo steps, newest first.
func (e *Editor) History() []history.Info {
	return e.State().UndoStack().Info()
}

// ClearHistory removes all undo/redo history.
func (e *Editor) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = e.state.Set(Patch{UndoStack: &history.Stack{}, RedoStack: &history.Stack{}})
}

// BeginUndoGroup starts a new undo group.
// All changes until EndUndoGroup are undone as a single step. Groups nest;
// only the outermost one shapes history.
func (e *Editor) BeginUndoGroup(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.groups = append(e.groups, group{name: name, start: e.state})
}

// EndUndoGroup ends the current undo group.
func (e *Editor) EndUndoGroup() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.popGroup()
	if err != nil {
		return err
	}
	if len(e.groups) > 0 || e.state.Content() == g.start.Content() || !e.state.AllowUndo() {
		return nil
	}
	undo := g.start.UndoStack().Push(history.Entry{
		Content:    g.start.Content(),
		ChangeType: e.state.LastChangeType(),
	}).Truncate(e.state.cfg.maxUndoEntries)
	e.state = e.state.Set(Patch{Content: e.state.Content().With(content.WithSelectionBefore(g.start.Selection())), UndoStack: &undo})
	e.state.cfg.logger.Debug("undo group closed", "name", g.name, "undo", undo.Len())
	return nil
}

// CancelUndoGroup ends the current group and discards its changes.
func (e *Editor) CancelUndoGroup() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.popGroup()
	if err != nil {
		return err
	}
	e.state = g.start
	return nil
}

func (e *Editor) popGroup() (group, error) {
	if len(e.groups) == 0 {
		return group{}, ErrNoGroup
	}
	g := e.groups[len(e.groups)-1]
	e.groups = e.groups[:len(e.groups)-1]
	return g, nil
}

// Transaction executes fn within an undo group.
// If fn returns an error the group is cancelled and its changes discarded.
func (e *Editor) Transaction(name string, fn func() error) error {
	e.BeginUndoGroup(name)
	if err := fn(); err != nil {
		_ = e.CancelUndoGroup()
		return err
	}
	return e.EndUndoGroup()
}
