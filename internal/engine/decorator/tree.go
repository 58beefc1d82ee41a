package decorator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
)

// LeafRange is a run of characters sharing one style set.
type LeafRange struct {
	Start, End int
}

// Range is a run of characters sharing one decoration key, split into
// style leaves. DecoratorKey is "" for undecorated text.
type Range struct {
	Start, End   int
	DecoratorKey string
	Leaves       []LeafRange
}

// Tree is the two-level partition of a block.
type Tree []Range

// Generate partitions b into decorator ranges, each split into style
// leaves. dec may be nil. An empty block yields one empty range with one
// empty leaf.
func Generate(cs *content.State, b *block.Block, dec Decorator) Tree {
	n := b.Length()
	if n == 0 {
		return Tree{{Leaves: []LeafRange{{}}}}
	}
	decorations := make([]string, n)
	if dec != nil {
		copy(decorations, dec.Decorations(b, cs))
	}

	var out Tree
	block.FindRanges(decorations,
		func(x, y string) bool { return x == y },
		always[string],
		func(start, end int) {
			out = append(out, Range{
				Start:        start,
				End:          end,
				DecoratorKey: decorations[start],
				Leaves:       leaves(b, start, end),
			})
		})
	return out
}

func always[T any](T) bool { return true }

func leaves(b *block.Block, start, end int) []LeafRange {
	var out []LeafRange
	block.FindRanges(b.CharactersSlice(start, end), block.SameStyle, always[*character.Metadata], func(s, e int) {
		out = append(out, LeafRange{Start: s + start, End: e + start})
	})
	return out
}

// Fingerprint summarizes the decorator structure of t: decorated ranges
// contribute "<key>.<leaf count>" and undecorated ranges "".
func Fingerprint(t Tree) string {
	parts := make([]string, len(t))
	for i, r := range t {
		if r.DecoratorKey != "" {
			parts[i] = r.DecoratorKey + "." + strconv.Itoa(len(r.Leaves))
		}
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two trees have the same ranges and leaves.
func (t Tree) Equal(other Tree) bool {
	return slices.EqualFunc(t, other, func(a, b Range) bool {
		return a.Start == b.Start && a.End == b.End &&
			a.DecoratorKey == b.DecoratorKey && slices.Equal(a.Leaves, b.Leaves)
	})
}
