package raw

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

type decoder struct {
	cs       *content.State
	tree     bool
	entities map[int]string
	seen     map[string]bool
	order    []*block.Block
}

// Decode builds a document from d. Entities are registered in the entity
// store selected by opts; missing block keys are generated. A document
// with children lists becomes a tree document.
func Decode(d Document, opts ...content.Option) (*content.State, error) {
	dec := &decoder{
		cs:       content.FromBlocks(nil, opts...),
		tree:     d.IsTree(),
		entities: make(map[int]string, len(d.EntityMap)),
		seen:     make(map[string]bool, d.Len()),
	}
	if err := dec.registerEntities(d.EntityMap); err != nil {
		return nil, err
	}
	if err := dec.decodeBlocks(d.Blocks, ""); err != nil {
		return nil, err
	}
	order := dec.order
	if dec.tree {
		order = tree.Relink(order)
	}
	return content.FromBlocks(order, append(slices.Clone(opts), content.WithTree(dec.tree))...), nil
}

// registerEntities creates entities in numeric key order so that stores
// hand out keys deterministically.
func (dec *decoder) registerEntities(m map[string]Entity) error {
	nums := make([]int, 0, len(m))
	byNum := make(map[int]Entity, len(m))
	for k, e := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("entity map key %q: %w", k, ErrUnknownEntity)
		}
		nums = append(nums, n)
		byNum[n] = e
	}
	slices.Sort(nums)
	for _, n := range nums {
		e := byNum[n]
		mut := entity.Mutability(e.Mutability)
		if !mut.Valid() {
			return fmt.Errorf("entity %d: %q: %w", n, e.Mutability, ErrInvalidMutability)
		}
		dec.entities[n] = dec.cs.CreateEntity(e.Type, mut, entity.Data(e.Data))
	}
	return nil
}

func (dec *decoder) decodeBlocks(blocks []Block, parent string) error {
	for _, rb := range blocks {
		b, err := dec.decodeBlock(rb, parent)
		if err != nil {
			return err
		}
		dec.order = append(dec.order, b)
		if err := dec.decodeBlocks(rb.Children, b.Key()); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) decodeBlock(rb Block, parent string) (*block.Block, error) {
	key := rb.Key
	if key == "" {
		key = dec.cs.Keys().Generate()
	}
	if dec.seen[key] {
		return nil, fmt.Errorf("block %q: %w", key, ErrDuplicateKey)
	}
	dec.seen[key] = true

	chars, err := dec.characters(rb)
	if err != nil {
		return nil, fmt.Errorf("block %q: %w", key, err)
	}
	return block.New(block.Config{
		Key:        key,
		Type:       block.Type(rb.Type),
		Text:       rb.Text,
		Depth:      rb.Depth,
		Characters: chars,
		Data:       block.Data(rb.Data),
		Pool:       dec.cs.Pool(),
		Tree:       dec.tree,
		Parent:     parent,
	}), nil
}

// characters rebuilds per-character metadata from the ranges of rb.
func (dec *decoder) characters(rb Block) ([]*character.Metadata, error) {
	n := utf8.RuneCountInString(rb.Text)
	styles := make([][]string, n)
	entities := make([]string, n)

	for _, r := range rb.InlineStyleRanges {
		if err := checkRange(r.Offset, r.Length, n); err != nil {
			return nil, fmt.Errorf("style %q: %w", r.Style, err)
		}
		for i := r.Offset; i < r.Offset+r.Length; i++ {
			styles[i] = append(styles[i], r.Style)
		}
	}
	for _, r := range rb.EntityRanges {
		if err := checkRange(r.Offset, r.Length, n); err != nil {
			return nil, fmt.Errorf("entity %d: %w", r.Key, err)
		}
		key, ok := dec.entities[r.Key]
		if !ok {
			return nil, fmt.Errorf("entity %d: %w", r.Key, ErrUnknownEntity)
		}
		for i := r.Offset; i < r.Offset+r.Length; i++ {
			entities[i] = key
		}
	}

	pool := dec.cs.Pool()
	chars := make([]*character.Metadata, n)
	for i := range chars {
		chars[i] = pool.Create(character.NewStyleSet(styles[i]...), entities[i])
	}
	return chars, nil
}

func checkRange(offset, length, n int) error {
	if offset < 0 || length < 0 || offset+length > n {
		return fmt.Errorf("[%d,%d) in text of length %d: %w", offset, offset+length, n, ErrRangeOutOfBounds)
	}
	return nil
}
