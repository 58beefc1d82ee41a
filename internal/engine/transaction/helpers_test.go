package transaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/keys"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

// doc builds a flat document with one block per line keyed b0, b1, ...
// New keys continue the sequence.
func doc(lines ...string) *content.State {
	return content.FromText(strings.Join(lines, "\n"), nil,
		content.WithKeyGenerator(keys.NewSequence("b")),
		content.WithEntityStore(entity.NewStore()),
		content.WithPool(character.NewPool()),
	)
}

type node struct {
	key      string
	text     string
	children []node
}

func n(key, text string, children ...node) node {
	return node{key: key, text: text, children: children}
}

// treeDoc builds a tree document of list items. New keys are k0, k1, ...
func treeDoc(roots ...node) *content.State {
	var order []*block.Block
	var walk func(parent string, depth int, nodes []node)
	walk = func(parent string, depth int, nodes []node) {
		for _, x := range nodes {
			order = append(order, block.New(block.Config{
				Key:    x.key,
				Text:   x.text,
				Type:   block.UnorderedListItem,
				Depth:  depth,
				Tree:   true,
				Parent: parent,
			}))
			walk(x.key, depth+1, x.children)
		}
	}
	walk("", 0, roots)
	return content.FromBlocks(tree.Relink(order),
		content.WithKeyGenerator(keys.NewSequence("k")),
		content.WithEntityStore(entity.NewStore()),
	)
}

func texts(cs *content.State) []string {
	var out []string
	cs.Blocks().Each(func(_ int, b *block.Block) bool {
		out = append(out, b.Text())
		return true
	})
	return out
}

// outline renders the tree as "a(b,c),d".
func outline(cs *content.State) string {
	m := cs.Blocks()
	var render func(keys []string) string
	render = func(keys []string) string {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k
			if b := m.Get(k); b != nil && b.HasChildren() {
				parts[i] += "(" + render(b.ChildKeys()) + ")"
			}
		}
		return strings.Join(parts, ",")
	}
	var roots []string
	m.Each(func(_ int, b *block.Block) bool {
		if b.ParentKey() == "" {
			roots = append(roots, b.Key())
		}
		return true
	})
	return render(roots)
}

func requireValidTree(t *testing.T, cs *content.State) {
	t.Helper()
	require.NoError(t, tree.Validate(cs.Blocks()))
	require.True(t, tree.IsPreOrder(cs.Blocks()), "not pre-order: %v", cs.Blocks().Keys())
}
