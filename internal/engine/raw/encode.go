package raw

import (
	"maps"
	"strconv"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
)

// encoder numbers entities in order of first appearance.
type encoder struct {
	cs       *content.State
	numbers  map[string]int
	entities map[string]Entity
}

// Encode converts cs to its serializable form. Tree documents nest blocks
// under their parents; flat documents list them in order.
func Encode(cs *content.State) (Document, error) {
	enc := &encoder{
		cs:       cs,
		numbers:  make(map[string]int),
		entities: make(map[string]Entity),
	}
	var blocks []Block
	var err error
	if cs.IsTree() {
		blocks, err = enc.encodeTree()
	} else {
		blocks = make([]Block, 0, cs.Blocks().Len())
		cs.Blocks().Each(func(_ int, b *block.Block) bool {
			var rb Block
			rb, err = enc.encodeBlock(b)
			blocks = append(blocks, rb)
			return err == nil
		})
	}
	if err != nil {
		return Document{}, err
	}
	return Document{Blocks: blocks, EntityMap: enc.entities}, nil
}

func (enc *encoder) encodeTree() ([]Block, error) {
	var roots []*block.Block
	enc.cs.Blocks().Each(func(_ int, b *block.Block) bool {
		if b.ParentKey() == "" {
			roots = append(roots, b)
		}
		return true
	})
	return enc.encodeNodes(roots)
}

func (enc *encoder) encodeNodes(nodes []*block.Block) ([]Block, error) {
	out := make([]Block, 0, len(nodes))
	for _, b := range nodes {
		rb, err := enc.encodeBlock(b)
		if err != nil {
			return nil, err
		}
		kids := make([]*block.Block, 0, len(b.ChildKeys()))
		for _, k := range b.ChildKeys() {
			child, err := enc.cs.BlockOrErr(k)
			if err != nil {
				return nil, err
			}
			kids = append(kids, child)
		}
		if rb.Children, err = enc.encodeNodes(kids); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, nil
}

func (enc *encoder) encodeBlock(b *block.Block) (Block, error) {
	rb := Block{
		Key:               b.Key(),
		Type:              string(b.Type()),
		Text:              b.Text(),
		Depth:             b.Depth(),
		InlineStyleRanges: StyleRanges(b),
		EntityRanges:      []EntityRange{},
		Data:              maps.Clone(map[string]any(b.Data())),
	}
	if rb.Data == nil {
		rb.Data = map[string]any{}
	}

	var err error
	b.FindEntityRanges(func(m *character.Metadata) bool { return m.Entity() != "" }, func(start, end int) {
		if err != nil {
			return
		}
		var n int
		n, err = enc.entityNumber(b.EntityAt(start))
		rb.EntityRanges = append(rb.EntityRanges, EntityRange{Offset: start, Length: end - start, Key: n})
	})
	return rb, err
}

func (enc *encoder) entityNumber(key string) (int, error) {
	if n, ok := enc.numbers[key]; ok {
		return n, nil
	}
	e, err := enc.cs.Entity(key)
	if err != nil {
		return 0, err
	}
	n := len(enc.numbers)
	enc.numbers[key] = n
	enc.entities[strconv.Itoa(n)] = Entity{
		Type:       e.Type(),
		Mutability: string(e.Mutability()),
		Data:       maps.Clone(map[string]any(e.Data())),
	}
	return n, nil
}

// StyleRanges lists, for each style in order of first appearance, the runs
// of characters carrying it.
func StyleRanges(b *block.Block) []InlineStyleRange {
	var styles []string
	seen := make(map[string]bool)
	var last *character.Metadata
	for _, m := range b.Characters() {
		if m == last {
			continue
		}
		last = m
		for _, s := range m.Style().Slice() {
			if !seen[s] {
				seen[s] = true
				styles = append(styles, s)
			}
		}
	}

	out := []InlineStyleRange{}
	chars := b.Characters()
	for _, style := range styles {
		block.FindRanges(chars,
			func(x, y *character.Metadata) bool { return x.HasStyle(style) == y.HasStyle(style) },
			func(m *character.Metadata) bool { return m.HasStyle(style) },
			func(start, end int) {
				out = append(out, InlineStyleRange{Offset: start, Length: end - start, Style: style})
			})
	}
	return out
}
