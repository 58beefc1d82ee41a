package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

func TestReplaceText(t *testing.T) {
	cs := doc("Hello World")
	bold := character.NewStyleSet("BOLD")

	out, err := ReplaceText(cs, selection.Range("b0", 6, "b0", 11), "Go", bold, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello Go", out.Block("b0").Text())
	assert.True(t, out.Block("b0").InlineStyleAt(6).Has("BOLD"))
	assert.False(t, out.Block("b0").InlineStyleAt(5).Has("BOLD"))
	assert.Equal(t, selection.Collapsed("b0", 8), out.SelectionAfter())
}

func TestReplaceTextStripsStraddlingEntity(t *testing.T) {
	cs, _ := withEntity(t, doc("abcdefg"), entity.Immutable, 2, 5)

	out, err := ReplaceText(cs, selection.Range("b0", 4, "b0", 6), "Z", character.StyleSet{}, "")
	require.NoError(t, err)
	b := out.Block("b0")
	assert.Equal(t, "abcdZg", b.Text())
	for i := range b.Length() {
		assert.Equal(t, "", b.EntityAt(i))
	}
}

func TestInsertRequiresCaret(t *testing.T) {
	_, err := Insert(doc("ab"), selection.Range("b0", 0, "b0", 1), "x", character.StyleSet{}, "")
	assert.ErrorIs(t, err, ErrSelectionNotCollapsed)

	out, err := Insert(doc("ab"), selection.Collapsed("b0", 1), "x", character.StyleSet{}, "")
	require.NoError(t, err)
	assert.Equal(t, "axb", out.Block("b0").Text())
}

func TestRemoveBackwardSelection(t *testing.T) {
	cs := doc("Hello", "World")
	sel := selection.Range("b1", 3, "b0", 2).With(selection.Backward(true))

	out, err := Remove(cs, sel, Backward)
	require.NoError(t, err)
	assert.Equal(t, []string{"Held"}, texts(out))
	assert.Equal(t, selection.Collapsed("b0", 2), out.SelectionAfter())
}

func TestSplit(t *testing.T) {
	cs := doc("Hello World")

	out, err := Split(cs, selection.Range("b0", 5, "b0", 6))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World"}, texts(out))
	assert.Equal(t, selection.Collapsed("b1", 0), out.SelectionAfter())
}

func TestMoveText(t *testing.T) {
	cs := doc("Hello ", "World")

	out, err := MoveText(cs, selection.Range("b0", 0, "b0", 5), selection.Collapsed("b1", 5))
	require.NoError(t, err)
	assert.Equal(t, []string{" ", "WorldHello"}, texts(out))
}

func TestReplaceWithFragment(t *testing.T) {
	cs := doc("one two three")
	out, err := ReplaceWithFragment(cs, selection.Range("b0", 4, "b0", 7), fragmentOf("2", "II"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one 2", "II three"}, texts(out))
}

func TestBlockLevelModifiers(t *testing.T) {
	cs := doc("a", "b", "c")
	sel := selection.Range("b0", 0, "b1", 1)

	deep, err := AdjustBlockDepth(cs, sel, 2, 4)
	require.NoError(t, err)
	typed, err := SetBlockType(deep, sel, block.HeaderThree)
	require.NoError(t, err)
	for _, k := range []string{"b0", "b1"} {
		assert.Equal(t, block.HeaderThree, typed.Block(k).Type())
		assert.Equal(t, 0, typed.Block(k).Depth())
	}
	assert.Same(t, cs.Block("b2"), typed.Block("b2"))

	withData, err := SetBlockData(typed, sel, block.Data{"a": 1})
	require.NoError(t, err)
	merged, err := MergeBlockData(withData, sel, block.Data{"b": 2})
	require.NoError(t, err)
	assert.Equal(t, block.Data{"a": 1, "b": 2}, merged.Block("b1").Data())
	assert.Equal(t, block.Data{"a": 1}, withData.Block("b1").Data())
}

func TestApplyEntityToRange(t *testing.T) {
	cs, old := withEntity(t, doc("abcdefg"), entity.Immutable, 0, 3)
	link := cs.CreateEntity("LINK", entity.Mutable, entity.Data{"href": "x"})

	out, err := ApplyEntityToRange(cs, selection.Range("b0", 2, "b0", 5), link)
	require.NoError(t, err)
	b := out.Block("b0")
	assert.Equal(t, "", b.EntityAt(0), "straddling entity removed")
	assert.NotEqual(t, old, b.EntityAt(1))
	assert.Equal(t, link, b.EntityAt(2))
	assert.Equal(t, link, b.EntityAt(4))
	assert.Equal(t, "", b.EntityAt(5))
}
