package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

// withEntity returns cs with an entity of the given mutability over
// [start, end) of block b0.
func withEntity(t *testing.T, cs *content.State, m entity.Mutability, start, end int) (*content.State, string) {
	t.Helper()
	key := cs.CreateEntity("TOKEN", m, nil)
	out, err := ApplyEntity(cs, selection.Range("b0", start, "b0", end), key)
	require.NoError(t, err)
	return out, key
}

func TestRemoveEntitiesAtEdges(t *testing.T) {
	tests := []struct {
		name       string
		mutability entity.Mutability
		sel        selection.State
		stripped   bool
	}{
		{"immutable straddles start", entity.Immutable, selection.Range("b0", 3, "b0", 6), true},
		{"immutable straddles end", entity.Immutable, selection.Range("b0", 0, "b0", 4), true},
		{"segmented straddles", entity.Segmented, selection.Range("b0", 3, "b0", 6), true},
		{"immutable edge on boundary", entity.Immutable, selection.Range("b0", 5, "b0", 6), false},
		{"mutable kept", entity.Mutable, selection.Range("b0", 3, "b0", 6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, key := withEntity(t, doc("abcdefg"), tt.mutability, 2, 5)

			out, err := RemoveEntitiesAtEdges(cs, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.sel, out.SelectionAfter())
			if !tt.stripped {
				assert.Same(t, cs.Block("b0"), out.Block("b0"))
				return
			}
			for i := range 7 {
				assert.Equal(t, "", out.Block("b0").EntityAt(i), "offset %d", i)
			}
			assert.Equal(t, key, cs.Block("b0").EntityAt(3), "input is unchanged")
		})
	}
}

func TestRemoveEntitiesAtEdgesMissingEntity(t *testing.T) {
	cs := doc("abc")
	other := doc("abc")
	key := other.CreateEntity("TOKEN", entity.Immutable, nil)
	cs, err := ApplyEntity(cs, selection.Range("b0", 0, "b0", 3), key)
	require.NoError(t, err)

	_, err = RemoveEntitiesAtEdges(cs, selection.Range("b0", 1, "b0", 2))
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRemoveWidensToEntity(t *testing.T) {
	tests := []struct {
		name       string
		mutability entity.Mutability
		want       string
	}{
		{"immutable", entity.Immutable, "abfg"},
		{"mutable", entity.Mutable, "abcefg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, _ := withEntity(t, doc("abcdefg"), tt.mutability, 2, 5)
			out, err := Remove(cs, selection.Range("b0", 3, "b0", 4), Backward)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Block("b0").Text())
		})
	}
}

func TestRemoveSegmentedEntity(t *testing.T) {
	cs, _ := withEntity(t, doc("Foo Bar Baz!"), entity.Segmented, 0, 11)

	out, err := Remove(cs, selection.Range("b0", 10, "b0", 11), Backward)
	require.NoError(t, err)
	assert.Equal(t, "Foo Bar!", out.Block("b0").Text())

	out, err = Remove(cs, selection.Range("b0", 0, "b0", 1), Forward)
	require.NoError(t, err)
	assert.Equal(t, "Bar Baz!", out.Block("b0").Text())
}

func TestSegmentRemovalRange(t *testing.T) {
	tests := []struct {
		name               string
		selStart, selEnd   int
		text               string
		entityStart        int
		dir                Direction
		wantStart, wantEnd int
	}{
		{"last segment backward", 10, 11, "Foo Bar Baz", 0, Backward, 7, 11},
		{"first segment forward", 0, 1, "Foo Bar Baz", 0, Forward, 0, 4},
		{"whole entity", 0, 11, "Foo Bar Baz", 0, Forward, 0, 11},
		{"middle segment", 5, 6, "Foo Bar Baz", 0, Backward, 4, 8},
		{"offset entity", 12, 13, "ab cd", 10, Backward, 10, 13},
		{"no overlap", 20, 21, "ab", 0, Backward, 20, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := SegmentRemovalRange(tt.selStart, tt.selEnd, tt.text, tt.entityStart, tt.dir)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestCharacterRemovalRangeAcrossEntities(t *testing.T) {
	cs := doc("aaXXbbYYcc")
	x := cs.CreateEntity("X", entity.Immutable, nil)
	y := cs.CreateEntity("Y", entity.Immutable, nil)
	cs, err := ApplyEntity(cs, selection.Range("b0", 2, "b0", 4), x)
	require.NoError(t, err)
	cs, err = ApplyEntity(cs, selection.Range("b0", 6, "b0", 8), y)
	require.NoError(t, err)

	b := cs.Block("b0")
	got, err := CharacterRemovalRange(cs, b, b, selection.Range("b0", 3, "b0", 7), Backward)
	require.NoError(t, err)
	assert.Equal(t, selection.Range("b0", 2, "b0", 8), got)

	plain, err := CharacterRemovalRange(cs, b, b, selection.Range("b0", 0, "b0", 1), Backward)
	require.NoError(t, err)
	assert.Equal(t, selection.Range("b0", 0, "b0", 1), plain)
}
