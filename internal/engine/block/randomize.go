package block

import "github.com/sompylasar/draft-js/internal/engine/keys"

// RandomizeKeys returns m with every block given a fresh key from gen.
// Tree links between blocks of m are remapped to the new keys; links to
// blocks outside m are cleared.
func RandomizeKeys(m *Map, gen keys.Generator) *Map {
	if m.Len() == 0 {
		return m
	}
	renamed := make(map[string]string, m.Len())
	for _, b := range m.blocks {
		renamed[b.key] = gen.Generate()
	}

	out := make([]*Block, 0, m.Len())
	for _, b := range m.blocks {
		opts := []Option{WithKey(renamed[b.key])}
		if b.tree {
			children := make([]string, 0, len(b.children))
			for _, c := range b.children {
				if nk, ok := renamed[c]; ok {
					children = append(children, nk)
				}
			}
			opts = append(opts,
				WithParent(renamed[b.parent]),
				WithPrevSibling(renamed[b.prev]),
				WithNextSibling(renamed[b.next]),
				WithChildren(children),
			)
		}
		out = append(out, b.With(opts...))
	}
	return NewMap(out...)
}
