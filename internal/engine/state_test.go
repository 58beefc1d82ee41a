package engine

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sompylasar/draft-js/internal/engine/bidi"
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/decorator"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/history"
	"github.com/sompylasar/draft-js/internal/engine/keys"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/transaction"
)

// doc builds a flat document with one block per line keyed b0, b1, ...
func doc(lines ...string) *content.State {
	return content.FromText(strings.Join(lines, "\n"), nil,
		content.WithKeyGenerator(keys.NewSequence("b")),
		content.WithEntityStore(entity.NewStore()),
		content.WithPool(character.NewPool()),
	)
}

func typeText(t *testing.T, es *EditorState, text string) *EditorState {
	t.Helper()
	cs, err := transaction.InsertText(es.Content(), es.Selection(), text, nil)
	require.NoError(t, err)
	return es.Push(cs, history.InsertCharacters, true)
}

func blockText(es *EditorState, key string) string {
	return es.Content().Block(key).Text()
}

func TestCreateEmpty(t *testing.T) {
	es := CreateEmpty()
	require.Equal(t, 1, es.Content().Blocks().Len())
	first := es.Content().FirstBlock()
	assert.Equal(t, "", first.Text())
	assert.Equal(t, selection.CreateEmpty(first.Key()), es.Selection())
	assert.True(t, es.AllowUndo())
	assert.True(t, es.UndoStack().IsEmpty())
	assert.True(t, es.RedoStack().IsEmpty())
	assert.Equal(t, history.ChangeType(""), es.LastChangeType())
	assert.NotNil(t, es.BlockTree(first.Key()))
	assert.Equal(t, 1, es.DirectionMap().Len())
}

func TestCreateWithContentWithoutBlocks(t *testing.T) {
	es := CreateWithContent(content.FromBlocks(nil))
	assert.Equal(t, 1, es.Content().Blocks().Len())
}

func TestPushCoalescesTyping(t *testing.T) {
	es := CreateWithContent(doc(""))
	for _, r := range "abc" {
		es = typeText(t, es, string(r))
	}
	assert.Equal(t, "abc", blockText(es, "b0"))
	assert.Equal(t, 1, es.UndoStack().Len(), "typing coalesces into one step")

	styled, err := transaction.ApplyInlineStyle(es.Content(), selection.Range("b0", 0, "b0", 3), "BOLD")
	require.NoError(t, err)
	es = es.Push(styled, history.ChangeInlineStyle, true)
	assert.Equal(t, 2, es.UndoStack().Len(), "a different change type starts a new step")

	es = es.Undo()
	assert.Equal(t, "abc", blockText(es, "b0"))
	assert.True(t, es.Content().Block("b0").InlineStyleAt(0).IsEmpty(), "only the style change is reverted")
	assert.Equal(t, selection.Collapsed("b0", 3), es.Selection())
	assert.True(t, es.MustForceSelection())
	assert.Equal(t, history.Undo, es.LastChangeType())

	es = es.Undo()
	assert.Equal(t, "", blockText(es, "b0"))
	assert.Equal(t, 0, es.Selection().AnchorOffset)
	assert.Equal(t, 2, es.RedoStack().Len())

	es = es.Redo()
	assert.Equal(t, "abc", blockText(es, "b0"))
	assert.Equal(t, selection.Collapsed("b0", 3), es.Selection())
	es = es.Redo()
	assert.True(t, es.Content().Block("b0").InlineStyleAt(2).Has("BOLD"))
	assert.True(t, es.RedoStack().IsEmpty())
	assert.Equal(t, history.Redo, es.LastChangeType())
}

func TestPushBoundaries(t *testing.T) {
	t.Run("moved selection", func(t *testing.T) {
		es := typeText(t, CreateWithContent(doc("")), "a")
		es = es.AcceptSelection(selection.Collapsed("b0", 0))
		es = typeText(t, es, "b")
		assert.Equal(t, "ba", blockText(es, "b0"))
		assert.Equal(t, 2, es.UndoStack().Len())
	})

	t.Run("non-typing repeats", func(t *testing.T) {
		es := CreateWithContent(doc("ab"))
		for range 2 {
			cs, err := transaction.SplitBlock(es.Content(), es.Selection())
			require.NoError(t, err)
			es = es.Push(cs, history.SplitBlock, true)
		}
		assert.Equal(t, 2, es.UndoStack().Len())
	})

	t.Run("push clears redo", func(t *testing.T) {
		es := typeText(t, CreateWithContent(doc("")), "a").Undo()
		require.Equal(t, 1, es.RedoStack().Len())
		es = typeText(t, es, "b")
		assert.True(t, es.RedoStack().IsEmpty())
	})
}

func TestPushSameContentIsNoop(t *testing.T) {
	es := CreateWithContent(doc("a"))
	assert.Same(t, es, es.Push(es.Content(), history.InsertCharacters, true))
}

func TestPushWithoutUndo(t *testing.T) {
	es := CreateWithContent(doc(""), WithAllowUndo(false))
	es = typeText(t, es, "a")
	es = typeText(t, es, "b")
	assert.Equal(t, "ab", blockText(es, "b0"))
	assert.True(t, es.UndoStack().IsEmpty())
	assert.Same(t, es, es.Undo())
	assert.Same(t, es, es.Redo())
	assert.Equal(t, selection.Collapsed("b0", 2), es.Selection())
}

func TestUndoRedoEmpty(t *testing.T) {
	es := CreateEmpty()
	assert.Same(t, es, es.Undo())
	assert.Same(t, es, es.Redo())
}

func TestMaxUndoEntries(t *testing.T) {
	es := CreateWithContent(doc("abc"), WithMaxUndoEntries(2))
	changes := []history.ChangeType{history.ChangeBlockData, history.ChangeBlockType, history.AdjustDepth}
	for i, ct := range changes {
		cs, err := transaction.MergeBlockData(es.Content(), es.Selection(), block.Data{"n": i})
		require.NoError(t, err)
		es = es.Push(cs, ct, true)
	}
	assert.Equal(t, 2, es.UndoStack().Len())
	info := es.UndoStack().Info()
	assert.Equal(t, history.AdjustDepth, info[0].ChangeType)
	assert.Equal(t, history.ChangeBlockType, info[1].ChangeType)
}

func TestInlineStyleOverride(t *testing.T) {
	bold := character.NewStyleSet("BOLD")
	es := CreateWithContent(doc("ab")).SetInlineStyleOverride(bold)
	got, ok := es.InlineStyleOverride()
	require.True(t, ok)
	assert.True(t, got.Equal(bold))
	assert.True(t, es.CurrentInlineStyle().Equal(bold))

	cs, err := transaction.SplitBlock(es.Content(), es.Selection())
	require.NoError(t, err)
	es = es.Push(cs, history.SplitBlock, true)
	_, ok = es.InlineStyleOverride()
	assert.True(t, ok, "split-block keeps the override")

	es = typeText(t, es, "x")
	_, ok = es.InlineStyleOverride()
	assert.False(t, ok, "typing consumes the override")

	_, ok = es.SetInlineStyleOverride(bold).ClearInlineStyleOverride().InlineStyleOverride()
	assert.False(t, ok)
}

func TestCurrentInlineStyle(t *testing.T) {
	cs := doc("ab", "", "cd")
	cs, err := transaction.ApplyInlineStyle(cs, selection.Range("b0", 1, "b0", 2), "BOLD")
	require.NoError(t, err)
	cs, err = transaction.ApplyInlineStyle(cs, selection.Range("b2", 0, "b2", 1), "ITALIC")
	require.NoError(t, err)
	es := CreateWithContent(cs)

	tests := []struct {
		name string
		sel  selection.State
		want []string
	}{
		{"caret after plain char", selection.Collapsed("b0", 1), nil},
		{"caret after bold char", selection.Collapsed("b0", 2), []string{"BOLD"}},
		{"caret at start of non-empty block", selection.Collapsed("b2", 0), []string{"ITALIC"}},
		{"caret in empty block looks upward", selection.Collapsed("b1", 0), []string{"BOLD"}},
		{"range uses first selected char", selection.Range("b0", 1, "b2", 1), []string{"BOLD"}},
		{"range starting at block end", selection.Range("b0", 2, "b2", 1), []string{"BOLD"}},
		{"range starting in empty block", selection.Range("b1", 0, "b2", 1), []string{"BOLD"}},
		{"caret at document start", selection.Collapsed("b0", 0), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := es.AcceptSelection(tt.sel).CurrentInlineStyle()
			assert.Equal(t, tt.want, got.Slice())
		})
	}
}

func TestAcceptSelectionRejectsMissingBlock(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	es := CreateWithContent(doc("a"), WithLogger(logger))

	assert.Same(t, es, es.AcceptSelection(selection.Collapsed("nope", 0)))
	assert.Same(t, es, es.ForceSelection(selection.Range("b0", 0, "nope", 0)))
	assert.Contains(t, buf.String(), "missing block")
}

func TestSelectionMoves(t *testing.T) {
	es := CreateWithContent(doc("ab", "cde"))
	assert.True(t, es.IsSelectionAtStartOfContent())
	assert.False(t, es.IsSelectionAtEndOfContent())

	moved := es.MoveSelectionToEnd()
	assert.Equal(t, selection.Collapsed("b1", 3), moved.Selection())
	assert.False(t, moved.MustForceSelection())
	assert.True(t, moved.IsSelectionAtEndOfContent())
	assert.False(t, moved.IsSelectionAtStartOfContent())

	focused := es.MoveFocusToEnd()
	assert.True(t, focused.MustForceSelection())
	assert.True(t, focused.Selection().HasFocus)
	assert.Equal(t, 3, focused.Selection().FocusOffset)

	accepted := focused.AcceptSelection(selection.Collapsed("b0", 1))
	assert.False(t, accepted.MustForceSelection())
}

func TestSetFlags(t *testing.T) {
	es := CreateEmpty()
	assert.True(t, es.SetCompositionMode(true).IsInCompositionMode())
	assert.False(t, es.SetAllowUndo(false).AllowUndo())
	assert.False(t, es.IsInCompositionMode(), "receiver is unchanged")
}

func TestBlockTreesFollowContent(t *testing.T) {
	hashtags := decorator.NewComposite(decorator.Entry{
		Name:     "hashtag",
		Strategy: decorator.RegexStrategy(regexp.MustCompile(`#\w+`)),
	})
	es := CreateWithContent(doc("#a b", "c #d"), WithDecorator(hashtags))
	assert.Equal(t, "0.0.1.", decorator.Fingerprint(es.BlockTree("b0")))
	assert.Equal(t, ".0.0.1", decorator.Fingerprint(es.BlockTree("b1")))
	before := es.BlockTree("b1")

	cs, err := transaction.InsertText(es.Content(), selection.Collapsed("b0", 4), " #e", nil)
	require.NoError(t, err)
	es = es.Push(cs, history.InsertCharacters, true)
	assert.Equal(t, "0.0.1..0.1.1", decorator.Fingerprint(es.BlockTree("b0")))
	assert.Same(t, &before[0], &es.BlockTree("b1")[0], "unchanged blocks keep their tree")

	plain := es.SetDecorator(nil)
	assert.Nil(t, plain.Decorator())
	assert.Equal(t, "", decorator.Fingerprint(plain.BlockTree("b0")))
	assert.Equal(t, "0.0.1..0.1.1", decorator.Fingerprint(es.BlockTree("b0")))

	again := plain.SetDecorator(hashtags)
	assert.Equal(t, "0.0.1..0.1.1", decorator.Fingerprint(again.BlockTree("b0")))
	same := again.SetDecorator(hashtags)
	assert.Same(t, &again.BlockTree("b0")[0], &same.BlockTree("b0")[0], "the same decorator keeps every tree")
}

func TestSwappingDecoratorsRecomputesChangedBlocks(t *testing.T) {
	hashtags := decorator.NewComposite(decorator.Entry{
		Name:     "hashtag",
		Strategy: decorator.RegexStrategy(regexp.MustCompile(`#\w+`)),
	})
	tagsAndMentions := decorator.NewComposite(decorator.Entry{
		Name:     "tag-or-mention",
		Strategy: decorator.RegexStrategy(regexp.MustCompile(`#\w+|@\w+`)),
	})

	es := CreateWithContent(doc("#a b", "c @d"), WithDecorator(hashtags))
	b0, b1 := es.BlockTree("b0"), es.BlockTree("b1")
	assert.Equal(t, "", decorator.Fingerprint(b1))

	swapped := es.SetDecorator(tagsAndMentions)
	assert.Same(t, &b0[0], &swapped.BlockTree("b0")[0], "identical decorations keep the tree")
	assert.NotSame(t, &b1[0], &swapped.BlockTree("b1")[0])
	assert.Equal(t, ".0.0.1", decorator.Fingerprint(swapped.BlockTree("b1")))
	assert.Equal(t, "", decorator.Fingerprint(es.BlockTree("b1")), "the old state keeps its trees")
}

func TestBlockTreesDropRemovedBlocks(t *testing.T) {
	es := CreateWithContent(doc("a", "b"))
	cs, err := transaction.RemoveRange(es.Content(), selection.Range("b0", 1, "b1", 0))
	require.NoError(t, err)
	es = es.Push(cs, history.RemoveRange, true)
	assert.NotNil(t, es.BlockTree("b0"))
	assert.Nil(t, es.BlockTree("b1"))
}

func TestDirectionMapFollowsContent(t *testing.T) {
	es := CreateWithContent(doc("abc", "123"))
	dm := es.DirectionMap()
	assert.Equal(t, bidi.LTR, dm.Get("b1"))

	es = es.AcceptSelection(selection.Collapsed("b0", 3))
	es = typeText(t, es, "d")
	assert.Same(t, dm, es.DirectionMap(), "unchanged directions keep the map")

	cs, err := transaction.ReplaceText(es.Content(), selection.Range("b0", 0, "b0", 4), "שלום", character.StyleSet{}, "")
	require.NoError(t, err)
	es = es.Push(cs, history.InsertCharacters, true)
	assert.Equal(t, bidi.RTL, es.DirectionMap().Get("b0"))
	assert.Equal(t, bidi.RTL, es.DirectionMap().Get("b1"))
}

func TestTab(t *testing.T) {
	cs, err := transaction.SetBlockType(doc("a", "b"), selection.Range("b0", 0, "b1", 0), block.UnorderedListItem)
	require.NoError(t, err)
	es := CreateWithContent(cs).AcceptSelection(selection.Collapsed("b1", 0))

	es, err = es.Tab(DefaultMaxDepth, false)
	require.NoError(t, err)
	assert.Equal(t, 1, es.Content().Block("b1").Depth())
	assert.Equal(t, history.AdjustDepth, es.LastChangeType())
	assert.Equal(t, 1, es.UndoStack().Len())

	same, err := es.Tab(1, false)
	require.NoError(t, err)
	assert.Same(t, es, same, "already at max depth")

	es, err = es.Tab(DefaultMaxDepth, true)
	require.NoError(t, err)
	assert.Equal(t, 0, es.Content().Block("b1").Depth())

	plain := CreateWithContent(doc("a"))
	same, err = plain.Tab(DefaultMaxDepth, false)
	require.NoError(t, err)
	assert.Same(t, plain, same, "non-list blocks are left alone")
}

func TestDebugChecksLogInvalidTree(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	es := CreateWithContent(doc("a"), WithDebugChecks(true), WithLogger(logger))

	orphan := block.New(block.Config{Key: "x", Text: "x", Tree: true, Parent: "missing"})
	broken := content.FromBlocks([]*block.Block{orphan})
	es.Push(broken, history.InsertFragment, true)
	assert.Contains(t, buf.String(), "invalid tree")

	buf.Reset()
	CreateWithContent(doc("a"), WithLogger(logger)).Push(broken, history.InsertFragment, true)
	assert.Empty(t, buf.String())
}
