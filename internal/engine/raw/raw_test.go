package raw

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/keys"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/transaction"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

func isolated(prefix string) []content.Option {
	return []content.Option{
		content.WithKeyGenerator(keys.NewSequence(prefix)),
		content.WithEntityStore(entity.NewStore()),
		content.WithPool(character.NewPool()),
	}
}

// richDoc has overlapping styles on b0 and a link on b1.
func richDoc(t *testing.T) *content.State {
	t.Helper()
	cs := content.FromText("Hello world\nsecond", nil, isolated("b")...)
	var err error
	cs, err = transaction.ApplyInlineStyle(cs, selection.Range("b0", 0, "b0", 5), "BOLD")
	require.NoError(t, err)
	cs, err = transaction.ApplyInlineStyle(cs, selection.Range("b0", 3, "b0", 8), "ITALIC")
	require.NoError(t, err)
	link := cs.CreateEntity("LINK", entity.Mutable, entity.Data{"url": "https://example.com"})
	cs, err = transaction.ApplyEntity(cs, selection.Range("b1", 0, "b1", 3), link)
	require.NoError(t, err)
	cs, err = transaction.MergeBlockData(cs, selection.Collapsed("b1", 0), block.Data{"align": "center"})
	require.NoError(t, err)
	return cs
}

// requireSameCharacters checks that every offset of every block carries
// the same styles and an entity of the same type.
func requireSameCharacters(t *testing.T, want, got *content.State) {
	t.Helper()
	require.Equal(t, want.Blocks().Keys(), got.Blocks().Keys())
	want.Blocks().Each(func(_ int, wb *block.Block) bool {
		gb := got.Block(wb.Key())
		require.Equal(t, wb.Text(), gb.Text())
		require.Equal(t, wb.Type(), gb.Type())
		require.Equal(t, wb.Depth(), gb.Depth())
		for i := range wb.Length() {
			assert.Equal(t, wb.InlineStyleAt(i).Slice(), gb.InlineStyleAt(i).Slice(), "%s:%d", wb.Key(), i)
			wk, gk := wb.EntityAt(i), gb.EntityAt(i)
			if wk == "" {
				assert.Empty(t, gk, "%s:%d", wb.Key(), i)
				continue
			}
			we, err := want.Entity(wk)
			require.NoError(t, err)
			ge, err := got.Entity(gk)
			require.NoError(t, err)
			assert.Equal(t, we.Type(), ge.Type())
			assert.Equal(t, we.Mutability(), ge.Mutability())
			assert.Equal(t, we.Data(), ge.Data())
		}
		return true
	})
}

func TestEncode(t *testing.T) {
	doc, err := Encode(richDoc(t))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.False(t, doc.IsTree())

	b0 := doc.Blocks[0]
	assert.Equal(t, "b0", b0.Key)
	assert.Equal(t, "unstyled", b0.Type)
	assert.Equal(t, []InlineStyleRange{
		{Offset: 0, Length: 5, Style: "BOLD"},
		{Offset: 3, Length: 5, Style: "ITALIC"},
	}, b0.InlineStyleRanges)
	assert.Empty(t, b0.EntityRanges)

	b1 := doc.Blocks[1]
	assert.Equal(t, []EntityRange{{Offset: 0, Length: 3, Key: 0}}, b1.EntityRanges)
	assert.Equal(t, map[string]any{"align": "center"}, b1.Data)
	assert.Nil(t, b1.Children)
	assert.Equal(t, map[string]Entity{
		"0": {Type: "LINK", Mutability: "MUTABLE", Data: map[string]any{"url": "https://example.com"}},
	}, doc.EntityMap)
}

func TestEncodeRuneOffsets(t *testing.T) {
	cs := content.FromText("héllo", nil, isolated("b")...)
	cs, err := transaction.ApplyInlineStyle(cs, selection.Range("b0", 1, "b0", 2), "CODE")
	require.NoError(t, err)
	doc, err := Encode(cs)
	require.NoError(t, err)
	assert.Equal(t, []InlineStyleRange{{Offset: 1, Length: 1, Style: "CODE"}}, doc.Blocks[0].InlineStyleRanges)
}

func TestRoundTrip(t *testing.T) {
	want := richDoc(t)
	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(want, f)
			require.NoError(t, err)
			got, err := Unmarshal(data, f, isolated("x")...)
			require.NoError(t, err)
			requireSameCharacters(t, want, got)
			assert.Equal(t, "center", got.Block("b1").Data()["align"])
		})
	}
}

func treeContent(t *testing.T) *content.State {
	t.Helper()
	mk := func(key, text, parent string) *block.Block {
		return block.New(block.Config{Key: key, Text: text, Type: block.UnorderedListItem, Tree: true, Parent: parent})
	}
	order := tree.Relink([]*block.Block{
		mk("p", "", ""),
		mk("c1", "one", "p"),
		mk("c2", "two", "p"),
		mk("d", "three", ""),
	})
	cs := content.FromBlocks(order, isolated("k")...)
	require.True(t, tree.IsValidTree(cs.Blocks()))
	return cs
}

func TestTreeRoundTrip(t *testing.T) {
	want := treeContent(t)
	doc, err := Encode(want)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.True(t, doc.IsTree())
	assert.Equal(t, 4, doc.Len())
	require.Len(t, doc.Blocks[0].Children, 2)
	assert.Equal(t, "c2", doc.Blocks[0].Children[1].Key)
	assert.NotNil(t, doc.Blocks[1].Children)

	data, err := Marshal(want, JSON)
	require.NoError(t, err)
	got, err := Unmarshal(data, JSON, isolated("k")...)
	require.NoError(t, err)
	assert.True(t, got.IsTree())
	assert.True(t, tree.IsValidTree(got.Blocks()))
	assert.Equal(t, []string{"c1", "c2"}, got.Block("p").ChildKeys())
	assert.Equal(t, "p", got.Block("c2").ParentKey())
	assert.Equal(t, "p", got.Block("d").PrevSiblingKey())
	requireSameCharacters(t, want, got)
}

func TestDecodeGeneratesMissingKeys(t *testing.T) {
	cs, err := Decode(Document{Blocks: []Block{{Text: "a"}, {Key: "z", Text: "b"}}}, isolated("g")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"g0", "z"}, cs.Blocks().Keys())
	assert.Equal(t, block.Unstyled, cs.Block("g0").Type())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want error
	}{
		{
			name: "unknown entity",
			doc:  Document{Blocks: []Block{{Key: "a", Text: "abc", EntityRanges: []EntityRange{{Offset: 0, Length: 1, Key: 7}}}}},
			want: ErrUnknownEntity,
		},
		{
			name: "style past end",
			doc:  Document{Blocks: []Block{{Key: "a", Text: "abc", InlineStyleRanges: []InlineStyleRange{{Offset: 2, Length: 2, Style: "BOLD"}}}}},
			want: ErrRangeOutOfBounds,
		},
		{
			name: "negative offset",
			doc:  Document{Blocks: []Block{{Key: "a", Text: "abc", InlineStyleRanges: []InlineStyleRange{{Offset: -1, Length: 1, Style: "BOLD"}}}}},
			want: ErrRangeOutOfBounds,
		},
		{
			name: "bad mutability",
			doc:  Document{EntityMap: map[string]Entity{"0": {Type: "LINK", Mutability: "FROZEN"}}},
			want: ErrInvalidMutability,
		},
		{
			name: "non-numeric entity key",
			doc:  Document{EntityMap: map[string]Entity{"x": {Type: "LINK", Mutability: "MUTABLE"}}},
			want: ErrUnknownEntity,
		},
		{
			name: "duplicate key",
			doc:  Document{Blocks: []Block{{Key: "a"}, {Key: "a"}}},
			want: ErrDuplicateKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.doc, isolated("b")...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnmarshalBadInput(t *testing.T) {
	_, err := Unmarshal([]byte("{"), JSON)
	assert.Error(t, err)
	_, err = Unmarshal([]byte("{}"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	want := richDoc(t)

	for _, name := range []string{"doc.json", "doc.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, want))
		got, err := Load(path, isolated("b")...)
		require.NoError(t, err)
		requireSameCharacters(t, want, got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"entityMap"`))

	_, err = Load(filepath.Join(dir, "doc.txt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Save(filepath.Join(dir, "doc.txt"), want), ErrUnknownFormat)
}
