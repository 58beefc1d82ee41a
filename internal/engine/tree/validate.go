package tree

import (
	"fmt"
	"slices"

	"github.com/sompylasar/draft-js/internal/engine/block"
)

// IsValidTree reports whether every link in m is consistent, the structure
// is acyclic and connected, and only leaves carry text.
func IsValidTree(m *block.Map) bool {
	return Validate(m) == nil
}

// Validate returns the first inconsistency found in m, wrapped in
// ErrInvalidTree, or nil.
func Validate(m *block.Map) error {
	var err error
	m.Each(func(_ int, b *block.Block) bool {
		err = validateBlock(m, b)
		return err == nil
	})
	if err != nil {
		return err
	}
	return validateConnected(m)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTree, fmt.Sprintf(format, args...))
}

func validateBlock(m *block.Map, b *block.Block) error {
	key := b.Key()
	if !b.IsTree() {
		return invalid("block %q is not a tree node", key)
	}

	siblings := rootKeys(m)
	if pk := b.ParentKey(); pk != "" {
		p := m.Get(pk)
		if p == nil {
			return invalid("block %q: parent %q missing", key, pk)
		}
		siblings = p.ChildKeys()
	}
	idx := slices.Index(siblings, key)
	if idx < 0 {
		return invalid("block %q: not listed by its parent", key)
	}
	wantPrev, wantNext := "", ""
	if idx > 0 {
		wantPrev = siblings[idx-1]
	}
	if idx < len(siblings)-1 {
		wantNext = siblings[idx+1]
	}
	if b.PrevSiblingKey() != wantPrev || b.NextSiblingKey() != wantNext {
		return invalid("block %q: sibling chain %q/%q, want %q/%q",
			key, b.PrevSiblingKey(), b.NextSiblingKey(), wantPrev, wantNext)
	}
	if p := b.PrevSiblingKey(); p != "" {
		if pb := m.Get(p); pb == nil || pb.NextSiblingKey() != key {
			return invalid("block %q: previous sibling %q does not point back", key, p)
		}
	}
	if n := b.NextSiblingKey(); n != "" {
		if nb := m.Get(n); nb == nil || nb.PrevSiblingKey() != key {
			return invalid("block %q: next sibling %q does not point back", key, n)
		}
	}
	if b.PrevSiblingKey() != "" && b.PrevSiblingKey() == b.NextSiblingKey() {
		return invalid("block %q: previous and next sibling are both %q", key, b.NextSiblingKey())
	}
	if b.HasChildren() && b.Text() != "" {
		return invalid("block %q: has text and children", key)
	}
	seen := make(map[string]bool, len(b.ChildKeys()))
	for _, ck := range b.ChildKeys() {
		c := m.Get(ck)
		if c == nil {
			return invalid("block %q: child %q missing", key, ck)
		}
		if c.ParentKey() != key {
			return invalid("block %q: child %q has parent %q", key, ck, c.ParentKey())
		}
		if seen[ck] {
			return invalid("block %q: child %q listed twice", key, ck)
		}
		seen[ck] = true
	}
	return nil
}

// rootKeys returns the keys with no parent in document order.
func rootKeys(m *block.Map) []string {
	var out []string
	m.Each(func(_ int, b *block.Block) bool {
		if b.ParentKey() == "" {
			out = append(out, b.Key())
		}
		return true
	})
	return out
}

// validateConnected walks from the single first root through children and
// next siblings, requiring every block to be reached exactly once.
func validateConnected(m *block.Map) error {
	if m.Len() == 0 {
		return nil
	}
	var first *block.Block
	heads := 0
	m.Each(func(_ int, b *block.Block) bool {
		if b.ParentKey() == "" && b.PrevSiblingKey() == "" {
			heads++
			first = b
		}
		return true
	})
	if heads != 1 {
		return invalid("%d root chains, want 1", heads)
	}

	visited := make(map[string]bool, m.Len())
	var walk func(b *block.Block) error
	walk = func(b *block.Block) error {
		for b != nil {
			if visited[b.Key()] {
				return invalid("cycle at %q", b.Key())
			}
			visited[b.Key()] = true
			if b.HasChildren() {
				if err := walk(m.Get(b.ChildKeys()[0])); err != nil {
					return err
				}
			}
			b = m.Get(b.NextSiblingKey())
		}
		return nil
	}
	if err := walk(first); err != nil {
		return err
	}
	if len(visited) != m.Len() {
		return invalid("reached %d of %d blocks", len(visited), m.Len())
	}
	return nil
}

// IsPreOrder reports whether the document order of m is the pre-order
// traversal of its tree.
func IsPreOrder(m *block.Map) bool {
	var order []string
	var walk func(keys []string)
	seen := map[string]bool{}
	walk = func(keys []string) {
		for _, k := range keys {
			if seen[k] {
				return
			}
			seen[k] = true
			order = append(order, k)
			if b := m.Get(k); b != nil {
				walk(b.ChildKeys())
			}
		}
	}
	walk(rootKeys(m))
	return slices.Equal(order, m.Keys())
}
