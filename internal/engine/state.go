package engine

import (
	"reflect"
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/bidi"
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/decorator"
	"github.com/sompylasar/draft-js/internal/engine/history"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/transaction"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// EditorState is an immutable editor snapshot: the current content, the
// undo and redo history, the selection and the per-block caches derived
// from content and decorator. Every method that changes something returns
// a new EditorState; the receiver is never modified.
type EditorState struct {
	cfg config

	content             *content.State
	selection           selection.State
	decorator           decorator.Decorator
	allowUndo           bool
	forceSelection      bool
	inComposition       bool
	inlineStyleOverride *character.StyleSet
	lastChangeType      history.ChangeType
	undo                history.Stack
	redo                history.Stack

	trees      map[string]decorator.Tree
	directions *bidi.DirectionMap
}

// CreateEmpty creates an editor over a document with one empty block.
func CreateEmpty(opts ...Option) *EditorState {
	return CreateWithContent(content.FromText("", nil), opts...)
}

// CreateWithContent creates an editor over cs with a caret at the start of
// the first block. A document without blocks is replaced by an empty one.
func CreateWithContent(cs *content.State, opts ...Option) *EditorState {
	if cs.Blocks().Len() == 0 {
		return CreateEmpty(opts...)
	}
	cfg := newConfig(opts)
	es := &EditorState{
		cfg:       cfg,
		content:   cs,
		selection: selection.CreateEmpty(cs.FirstBlock().Key()),
		decorator: cfg.decorator,
		allowUndo: cfg.allowUndo,
	}
	es.trees = generateTrees(nil, cs, cfg.decorator, false)
	es.directions = bidi.NewDirectionMap(cs.Blocks(), nil)
	return es
}

// Content returns the current document.
func (es *EditorState) Content() *content.State { return es.content }

// Selection returns the current selection.
func (es *EditorState) Selection() selection.State { return es.selection }

// Decorator returns the decorator, or nil.
func (es *EditorState) Decorator() decorator.Decorator { return es.decorator }

// AllowUndo reports whether pushes are recorded in history.
func (es *EditorState) AllowUndo() bool { return es.allowUndo }

// MustForceSelection reports whether a renderer must apply the selection
// even if it believes the native selection already matches.
func (es *EditorState) MustForceSelection() bool { return es.forceSelection }

// IsInCompositionMode reports whether an IME composition is in progress.
func (es *EditorState) IsInCompositionMode() bool { return es.inComposition }

// LastChangeType returns the type of the most recent change.
func (es *EditorState) LastChangeType() history.ChangeType { return es.lastChangeType }

// UndoStack returns the undo history.
func (es *EditorState) UndoStack() history.Stack { return es.undo }

// RedoStack returns the redo history.
func (es *EditorState) RedoStack() history.Stack { return es.redo }

// DirectionMap returns the resolved text direction of every block.
func (es *EditorState) DirectionMap() *bidi.DirectionMap { return es.directions }

// BlockTree returns the decorator tree of the block with key, or nil.
func (es *EditorState) BlockTree(key string) decorator.Tree { return es.trees[key] }

// InlineStyleOverride returns the pending override and whether one is set.
func (es *EditorState) InlineStyleOverride() (character.StyleSet, bool) {
	if es.inlineStyleOverride == nil {
		return character.StyleSet{}, false
	}
	return *es.inlineStyleOverride, true
}

// Patch lists the fields Set replaces. Nil pointers and zero values leave a
// field unchanged; the Clear flags reset optional fields to unset.
type Patch struct {
	Content                  *content.State
	Selection                *selection.State
	Decorator                decorator.Decorator
	ClearDecorator           bool
	AllowUndo                *bool
	ForceSelection           *bool
	InCompositionMode        *bool
	InlineStyleOverride      *character.StyleSet
	ClearInlineStyleOverride bool
	LastChangeType           *history.ChangeType
	UndoStack                *history.Stack
	RedoStack                *history.Stack
}

func ptr[T any](v T) *T { return &v }

// Set returns a copy of es with the fields of p applied. Decorator trees
// and the direction map are recomputed here and nowhere else: a new
// decorator regenerates trees for blocks whose decorations differ, new
// content regenerates trees only for blocks whose identity changed.
func (es *EditorState) Set(p Patch) *EditorState {
	next := *es

	decoratorChanged := false
	switch {
	case p.ClearDecorator:
		decoratorChanged = es.decorator != nil
		next.decorator = nil
	case p.Decorator != nil:
		decoratorChanged = !sameDecorator(p.Decorator, es.decorator)
		next.decorator = p.Decorator
	}
	if p.Content != nil {
		next.content = p.Content
	}
	if decoratorChanged || next.content != es.content {
		next.trees = generateTrees(es, next.content, next.decorator, decoratorChanged)
	}
	if next.content != es.content {
		next.directions = bidi.NewDirectionMap(next.content.Blocks(), es.directions)
	}

	if p.Selection != nil {
		next.selection = *p.Selection
	}
	if p.AllowUndo != nil {
		next.allowUndo = *p.AllowUndo
	}
	if p.ForceSelection != nil {
		next.forceSelection = *p.ForceSelection
	}
	if p.InCompositionMode != nil {
		next.inComposition = *p.InCompositionMode
	}
	switch {
	case p.ClearInlineStyleOverride:
		next.inlineStyleOverride = nil
	case p.InlineStyleOverride != nil:
		next.inlineStyleOverride = ptr(*p.InlineStyleOverride)
	}
	if p.LastChangeType != nil {
		next.lastChangeType = *p.LastChangeType
	}
	if p.UndoStack != nil {
		next.undo = *p.UndoStack
	}
	if p.RedoStack != nil {
		next.redo = *p.RedoStack
	}
	return &next
}

// sameDecorator compares decorators by identity. Values of non-comparable
// dynamic types are never considered the same.
func sameDecorator(a, b decorator.Decorator) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	return ta == reflect.TypeOf(b) && ta.Comparable() && a == b
}

// generateTrees builds the tree map for cs. Trees from prev are reused for
// blocks that are unchanged by identity; after a decorator change a tree is
// reused only if the old and new decorator agree on the block.
func generateTrees(prev *EditorState, cs *content.State, dec decorator.Decorator, decoratorChanged bool) map[string]decorator.Tree {
	trees := make(map[string]decorator.Tree, cs.Blocks().Len())
	cs.Blocks().Each(func(_ int, b *block.Block) bool {
		if prev != nil && prev.content.Block(b.Key()) == b {
			t, ok := prev.trees[b.Key()]
			if ok && (!decoratorChanged || sameDecorations(cs, b, dec, prev.decorator)) {
				trees[b.Key()] = t
				return true
			}
		}
		trees[b.Key()] = decorator.Generate(cs, b, dec)
		return true
	})
	return trees
}

func sameDecorations(cs *content.State, b *block.Block, a, c decorator.Decorator) bool {
	if a == nil || c == nil {
		return false
	}
	return slices.Equal(a.Decorations(b, cs), c.Decorations(b, cs))
}

// Push records cs as the new current content. Consecutive typing changes
// of one type coalesce into a single undo step; any other change, a change
// of type, or a moved selection starts a new step. The inline style
// override is cleared unless changeType preserves it.
func (es *EditorState) Push(cs *content.State, changeType history.ChangeType, forceSelection bool) *EditorState {
	if cs == es.content {
		return es
	}
	es.checkTree(cs, changeType)

	p := Patch{
		Selection:      ptr(cs.SelectionAfter()),
		ForceSelection: &forceSelection,
		LastChangeType: &changeType,
	}
	if !es.allowUndo {
		p.Content = cs
		p.ClearInlineStyleOverride = true
		return es.Set(p)
	}

	undo := es.undo
	next := cs
	if !es.selection.Equal(es.content.SelectionAfter()) || history.MustBecomeBoundary(es.lastChangeType, changeType) {
		undo = undo.Push(history.Entry{Content: es.content, ChangeType: changeType}).Truncate(es.cfg.maxUndoEntries)
		next = cs.With(content.WithSelectionBefore(es.selection))
	} else if changeType.IsTyping() {
		next = cs.With(content.WithSelectionBefore(es.content.SelectionBefore()))
	}

	p.Content = next
	p.UndoStack = &undo
	p.RedoStack = &history.Stack{}
	p.ClearInlineStyleOverride = !changeType.PreservesInlineStyleOverride()
	return es.Set(p)
}

func (es *EditorState) checkTree(cs *content.State, changeType history.ChangeType) {
	if !es.cfg.debugChecks || !cs.IsTree() {
		return
	}
	if err := tree.Validate(cs.Blocks()); err != nil {
		es.cfg.logger.Warn("invalid tree after push", "change", string(changeType), "err", err)
	}
}

// Undo restores the content before the most recent undo step and moves the
// current content to the redo stack. The selection becomes the one the
// undone change started from.
func (es *EditorState) Undo() *EditorState {
	if !es.allowUndo {
		return es
	}
	e, rest, ok := es.undo.Pop()
	if !ok {
		return es
	}
	redo := es.redo.Push(history.Entry{Content: es.content, ChangeType: e.ChangeType})
	return es.Set(Patch{
		Content:                  e.Content,
		Selection:                ptr(es.content.SelectionBefore()),
		ForceSelection:           ptr(true),
		ClearInlineStyleOverride: true,
		LastChangeType:           ptr(history.Undo),
		UndoStack:                &rest,
		RedoStack:                &redo,
	})
}

// Redo reapplies the most recently undone step. The selection becomes the
// one the redone change ended with.
func (es *EditorState) Redo() *EditorState {
	if !es.allowUndo {
		return es
	}
	e, rest, ok := es.redo.Pop()
	if !ok {
		return es
	}
	undo := es.undo.Push(history.Entry{Content: es.content, ChangeType: e.ChangeType}).Truncate(es.cfg.maxUndoEntries)
	return es.Set(Patch{
		Content:                  e.Content,
		Selection:                ptr(e.Content.SelectionAfter()),
		ForceSelection:           ptr(true),
		ClearInlineStyleOverride: true,
		LastChangeType:           ptr(history.Redo),
		UndoStack:                &undo,
		RedoStack:                &rest,
	})
}

// AcceptSelection sets the selection without forcing it. A selection that
// references a missing block is logged and ignored.
func (es *EditorState) AcceptSelection(sel selection.State) *EditorState {
	if !es.validSelection(sel) {
		return es
	}
	return es.Set(Patch{Selection: &sel, ForceSelection: ptr(false)})
}

// ForceSelection sets a focused selection and forces it to be rendered.
func (es *EditorState) ForceSelection(sel selection.State) *EditorState {
	if !es.validSelection(sel) {
		return es
	}
	sel.HasFocus = true
	return es.Set(Patch{Selection: &sel, ForceSelection: ptr(true)})
}

func (es *EditorState) validSelection(sel selection.State) bool {
	for _, key := range []string{sel.AnchorKey, sel.FocusKey} {
		if es.content.Block(key) == nil {
			es.cfg.logger.Warn("selection references a missing block; keeping the previous selection",
				"selection", sel.String(), "key", key)
			return false
		}
	}
	return true
}

// MoveSelectionToEnd places a caret at the end of the last block.
func (es *EditorState) MoveSelectionToEnd() *EditorState {
	last := es.content.LastBlock()
	return es.AcceptSelection(selection.Collapsed(last.Key(), last.Length()))
}

// MoveFocusToEnd places a caret at the end of the last block and forces it.
func (es *EditorState) MoveFocusToEnd() *EditorState {
	moved := es.MoveSelectionToEnd()
	return moved.ForceSelection(moved.selection)
}

// CurrentInlineStyle returns the style that typed text would receive: the
// override when set, otherwise the style of the character adjacent to the
// selection start, searching earlier blocks when the start block is empty.
func (es *EditorState) CurrentInlineStyle() character.StyleSet {
	if es.inlineStyleOverride != nil {
		return *es.inlineStyleOverride
	}
	sel := es.selection
	b := es.content.Block(sel.StartKey())
	if b == nil {
		return character.StyleSet{}
	}
	offset := sel.StartOffset()
	if sel.IsCollapsed() {
		switch {
		case offset > 0:
			return b.InlineStyleAt(offset - 1)
		case b.Length() > 0:
			return b.InlineStyleAt(0)
		}
		return es.styleAbove(b.Key())
	}
	switch {
	case offset < b.Length():
		return b.InlineStyleAt(offset)
	case offset > 0:
		return b.InlineStyleAt(offset - 1)
	}
	return es.styleAbove(b.Key())
}

// styleAbove returns the style of the last character of the nearest
// non-empty block before key.
func (es *EditorState) styleAbove(key string) character.StyleSet {
	bm := es.content.Blocks()
	for i := bm.IndexOf(key) - 1; i >= 0; i-- {
		if b := bm.At(i); b.Length() > 0 {
			return b.InlineStyleAt(b.Length() - 1)
		}
	}
	return character.StyleSet{}
}

// IsSelectionAtStartOfContent reports whether an edge of the selection is at
// offset 0 of the first block.
func (es *EditorState) IsSelectionAtStartOfContent() bool {
	return es.selection.HasEdgeWithin(es.content.FirstBlock().Key(), 0, 0)
}

// IsSelectionAtEndOfContent reports whether an edge of the selection is at
// the end of the last block.
func (es *EditorState) IsSelectionAtEndOfContent() bool {
	last := es.content.LastBlock()
	return es.selection.HasEdgeWithin(last.Key(), last.Length(), last.Length())
}

// SetInlineStyleOverride sets the style the next typed text receives.
func (es *EditorState) SetInlineStyleOverride(style character.StyleSet) *EditorState {
	return es.Set(Patch{InlineStyleOverride: &style})
}

// ClearInlineStyleOverride removes a pending override.
func (es *EditorState) ClearInlineStyleOverride() *EditorState {
	return es.Set(Patch{ClearInlineStyleOverride: true})
}

// SetDecorator replaces the decorator; nil removes it.
func (es *EditorState) SetDecorator(d decorator.Decorator) *EditorState {
	if d == nil {
		return es.Set(Patch{ClearDecorator: true})
	}
	return es.Set(Patch{Decorator: d})
}

// SetAllowUndo enables or disables history recording.
func (es *EditorState) SetAllowUndo(allow bool) *EditorState {
	return es.Set(Patch{AllowUndo: &allow})
}

// SetCompositionMode marks the start or end of an IME composition.
func (es *EditorState) SetCompositionMode(on bool) *EditorState {
	return es.Set(Patch{InCompositionMode: &on})
}

// Tab indents the list item under the selection, or outdents it when shift
// is set, and pushes the result as an adjust-depth change.
func (es *EditorState) Tab(maxDepth int, shift bool) (*EditorState, error) {
	cs, err := transaction.Tab(es.content, es.selection, shift, maxDepth)
	if err != nil {
		return nil, err
	}
	if cs == es.content {
		return es, nil
	}
	return es.Push(cs, history.AdjustDepth, true), nil
}
