// Package tree maintains the parent, sibling and children links of tree-mode
// documents.
//
// Links are logical keys resolved through a block.Map. Operations here take
// a map and return a new one; blocks whose links do not change are shared
// with the input. Document order is the pre-order traversal of the tree, so
// every subtree occupies a contiguous run of the map.
//
// Links are rebuilt by Relink from two sources of truth: the document order
// and each block's parent key. Operations therefore only reorder blocks and
// set parents; children and sibling keys follow.
package tree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
)

var (
	// ErrInvalidOperation is returned when a re-nesting operation's
	// preconditions do not hold.
	ErrInvalidOperation = errors.New("invalid tree operation")

	// ErrInvalidTree is returned by Validate for inconsistent links.
	ErrInvalidTree = errors.New("invalid tree")
)

func invalidOp(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

// Ancestors returns the parent chain of key, nearest first.
func Ancestors(m *block.Map, key string) []string {
	var out []string
	seen := map[string]bool{key: true}
	b := m.Get(key)
	for b != nil && b.ParentKey() != "" {
		p := b.ParentKey()
		if seen[p] {
			break
		}
		seen[p] = true
		out = append(out, p)
		b = m.Get(p)
	}
	return out
}

// IsDescendant reports whether key lies in the subtree of ancestor.
func IsDescendant(m *block.Map, key, ancestor string) bool {
	return slices.Contains(Ancestors(m, key), ancestor)
}

// SubtreeEnd returns the index just past the last descendant of key, or
// -1 when key is absent.
func SubtreeEnd(m *block.Map, key string) int {
	i := m.IndexOf(key)
	if i < 0 {
		return -1
	}
	return subtreeEnd(m.Blocks(), i)
}

// NextDelimiterKey returns the first block after the subtree of key that
// is not part of it: the next sibling of key or of its nearest ancestor
// that has one. It returns "" for flat blocks and at the end of the
// document.
func NextDelimiterKey(m *block.Map, key string) string {
	b := m.Get(key)
	if b == nil || !b.IsTree() {
		return ""
	}
	if next := b.NextSiblingKey(); next != "" {
		return next
	}
	p := m.Get(b.ParentKey())
	for p != nil && p.NextSiblingKey() == "" {
		p = m.Get(p.ParentKey())
	}
	if p == nil {
		return ""
	}
	return p.NextSiblingKey()
}

// NextDelimiterKeys returns the chain of delimiters following key: the
// next delimiter, then the delimiter after that one while it is nested.
func NextDelimiterKeys(m *block.Map, key string) []string {
	var out []string
	seen := map[string]bool{}
	next := NextDelimiterKey(m, key)
	for next != "" && !seen[next] {
		b := m.Get(next)
		if b == nil {
			break
		}
		seen[next] = true
		out = append(out, next)
		if b.ParentKey() == "" {
			break
		}
		next = NextDelimiterKey(m, next)
	}
	return out
}

// Relink rebuilds children and sibling keys from document order and parent
// keys. Flat blocks are returned unchanged. Blocks whose links already
// match are kept by pointer.
func Relink(order []*block.Block) []*block.Block {
	if len(order) == 0 || !order[0].IsTree() {
		return order
	}
	children := make(map[string][]string, len(order))
	var roots []string
	for _, b := range order {
		if p := b.ParentKey(); p != "" {
			children[p] = append(children[p], b.Key())
		} else {
			roots = append(roots, b.Key())
		}
	}

	prev := make(map[string]string, len(order))
	next := make(map[string]string, len(order))
	link := func(keys []string) {
		for i, k := range keys {
			if i > 0 {
				prev[k] = keys[i-1]
			}
			if i < len(keys)-1 {
				next[k] = keys[i+1]
			}
		}
	}
	link(roots)
	for _, keys := range children {
		link(keys)
	}

	out := make([]*block.Block, len(order))
	for i, b := range order {
		k := b.Key()
		kids := children[k]
		if b.PrevSiblingKey() == prev[k] && b.NextSiblingKey() == next[k] && slices.Equal(b.ChildKeys(), kids) {
			out[i] = b
			continue
		}
		out[i] = b.With(
			block.WithPrevSibling(prev[k]),
			block.WithNextSibling(next[k]),
			block.WithChildren(kids),
		)
	}
	return out
}

// RelinkMap is Relink over a map.
func RelinkMap(m *block.Map) *block.Map {
	return block.NewMap(Relink(m.Blocks())...)
}

func indexOf(order []*block.Block, key string) int {
	return slices.IndexFunc(order, func(b *block.Block) bool { return b.Key() == key })
}

// SubtreeEndIn is SubtreeEnd over a block slice in document order: the
// index after the last descendant of order[i]. Flat blocks have none.
func SubtreeEndIn(order []*block.Block, i int) int {
	return subtreeEnd(order, i)
}

// subtreeEnd returns the index after the last block descending from
// order[i]. Descendants must follow it contiguously.
func subtreeEnd(order []*block.Block, i int) int {
	root := order[i].Key()
	parent := make(map[string]string, len(order))
	for _, b := range order {
		parent[b.Key()] = b.ParentKey()
	}
	under := func(key string) bool {
		for steps := 0; key != "" && steps <= len(order); steps++ {
			key = parent[key]
			if key == root {
				return true
			}
		}
		return false
	}
	j := i + 1
	for j < len(order) && under(order[j].Key()) {
		j++
	}
	return j
}

// moveSpan moves order[from:to] so that it starts before the element
// currently at dest. dest must lie outside [from, to].
func moveSpan(order []*block.Block, from, to, dest int) []*block.Block {
	span := slices.Clone(order[from:to])
	rest := slices.Concat(order[:from], order[to:])
	if dest > from {
		dest -= to - from
	}
	return slices.Concat(rest[:dest], span, rest[dest:])
}

func setParent(order []*block.Block, i int, parent string) {
	if order[i].ParentKey() != parent {
		order[i] = order[i].With(block.WithParent(parent))
	}
}
