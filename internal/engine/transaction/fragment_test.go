package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

func fragmentOf(lines ...string) *block.Map {
	return doc(lines...).Blocks()
}

func TestFragment(t *testing.T) {
	cs := doc("Hello", "World", "Rest")

	frag, err := Fragment(cs, selection.Range("b0", 3, "b1", 2))
	require.NoError(t, err)
	require.Equal(t, 2, frag.Len())
	assert.Equal(t, "lo", frag.At(0).Text())
	assert.Equal(t, "Wo", frag.At(1).Text())
	assert.NotContains(t, []string{"b0", "b1", "b2"}, frag.At(0).Key())
	assert.NotEqual(t, frag.At(0).Key(), frag.At(1).Key())
}

func TestFragmentDropsStraddlingEntity(t *testing.T) {
	cs, key := withEntity(t, doc("abcdefg"), entity.Immutable, 2, 5)

	frag, err := Fragment(cs, selection.Range("b0", 3, "b0", 7))
	require.NoError(t, err)
	assert.Equal(t, "defg", frag.First().Text())
	assert.Equal(t, "", frag.First().EntityAt(0))
	assert.Equal(t, key, cs.Block("b0").EntityAt(3))
}

func TestFragmentTree(t *testing.T) {
	cs := treeDoc(n("a", "", n("b", "xx"), n("c", "yy")), n("d", "zz"))

	frag, err := Fragment(cs, selection.Range("b", 1, "d", 1))
	require.NoError(t, err)
	require.Equal(t, 3, frag.Len())
	for _, b := range frag.Blocks() {
		assert.True(t, b.IsTree())
	}
	assert.Equal(t, "", frag.At(0).ParentKey(), "parent outside the fragment is dropped")
	assert.Equal(t, frag.At(1).Key(), frag.At(0).NextSiblingKey())
}

func TestInsertFragmentSingleBlock(t *testing.T) {
	frag := fragmentOf("Bet")
	frag = frag.Set(frag.First().With(block.WithType(block.HeaderOne), block.WithData(block.Data{"x": 1})))

	tests := []struct {
		name string
		mode DataMode
		want block.Data
	}{
		{"replace", ReplaceData, block.Data{"x": 1}},
		{"merge", MergeData, block.Data{"x": 2, "y": 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := SetBlockData(doc("Alpha"), selection.Collapsed("b0", 0), block.Data{"x": 2, "y": 3})
			require.NoError(t, err)

			out, err := InsertFragment(cs, selection.Collapsed("b0", 5), frag, tt.mode)
			require.NoError(t, err)
			b := out.Block("b0")
			assert.Equal(t, "AlphaBet", b.Text())
			assert.Equal(t, block.HeaderOne, b.Type())
			assert.Equal(t, tt.want, b.Data())
			assert.Equal(t, selection.Collapsed("b0", 8), out.SelectionAfter())
		})
	}
}

func TestInsertFragmentMultipleBlocks(t *testing.T) {
	cs := doc("XY", "after")

	out, err := InsertFragment(cs, selection.Collapsed("b0", 1), fragmentOf("lo", "mid", "Wo"), ReplaceData)
	require.NoError(t, err)

	assert.Equal(t, []string{"Xlo", "mid", "WoY", "after"}, texts(out))
	keys := out.Blocks().Keys()
	assert.Equal(t, "b0", keys[0])
	assert.Equal(t, selection.Collapsed(keys[2], 2), out.SelectionAfter())
	assert.Same(t, cs.Block("b1"), out.Block("b1"))
}

func TestInsertFragmentHeadTakesTypeAtBlockStart(t *testing.T) {
	cs, err := SetBlockType(doc("body"), selection.Collapsed("b0", 0), block.Blockquote)
	require.NoError(t, err)
	frag := fragmentOf("Title", "text")
	frag = frag.Set(frag.First().With(block.WithType(block.HeaderTwo)))

	out, err := InsertFragment(cs, selection.Collapsed("b0", 0), frag, ReplaceData)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "textbody"}, texts(out))
	assert.Equal(t, block.HeaderTwo, out.Block("b0").Type())
}

func TestInsertFragmentTree(t *testing.T) {
	t.Run("leaf target", func(t *testing.T) {
		cs := treeDoc(n("a", "", n("b", "xy")), n("c", "z"))
		out, err := InsertFragment(cs, selection.Collapsed("b", 1), fragmentOf("1", "2", "3"), ReplaceData)
		require.NoError(t, err)
		requireValidTree(t, out)
		assert.Equal(t, "a(b,k1,k2),c", outline(out))
		assert.Equal(t, []string{"", "x1", "2", "3y", "z"}, texts(out))
		assert.Equal(t, selection.Collapsed("k2", 1), out.SelectionAfter())
	})

	t.Run("container target", func(t *testing.T) {
		cs := treeDoc(n("a", "", n("b", "x")), n("c", "y"))
		out, err := InsertFragment(cs, selection.Collapsed("a", 0), fragmentOf("one", "two"), ReplaceData)
		require.NoError(t, err)
		requireValidTree(t, out)
		assert.Equal(t, "a(b),k0,k1,c", outline(out))
		assert.Equal(t, selection.Collapsed("k1", 3), out.SelectionAfter())
	})
}

func TestInsertFragmentRequiresCaret(t *testing.T) {
	_, err := InsertFragment(doc("ab"), selection.Range("b0", 0, "b0", 1), fragmentOf("x"), ReplaceData)
	assert.ErrorIs(t, err, ErrSelectionNotCollapsed)
}

func TestFragmentRoundTrip(t *testing.T) {
	cs := doc("Hello", "World")
	frag, err := Fragment(cs, selection.Range("b0", 1, "b1", 3))
	require.NoError(t, err)

	removed, err := RemoveRange(cs, selection.Range("b0", 1, "b1", 3))
	require.NoError(t, err)
	restored, err := InsertFragment(removed, removed.SelectionAfter(), frag, ReplaceData)
	require.NoError(t, err)
	assert.Equal(t, cs.PlainText(""), restored.PlainText(""))
}
