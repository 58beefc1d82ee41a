// Package content provides the immutable document snapshot: the ordered
// block map, the entity store it references, and the selections recorded
// before and after the transaction that produced it.
//
// A State also carries the character pool and key generator that
// transactions use to derive new snapshots, and whether its blocks are tree
// nodes. Tree mode is fixed when the document is created.
package content

import (
	"regexp"
	"strings"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/entity"
	"github.com/sompylasar/draft-js/internal/engine/keys"
	"github.com/sompylasar/draft-js/internal/engine/selection"
)

// DefaultDelimiter splits text into blocks on CRLF, CR or LF.
var DefaultDelimiter = regexp.MustCompile(`\r\n?|\n`)

// State is an immutable document snapshot.
type State struct {
	blocks          *block.Map
	entities        *entity.Store
	selectionBefore selection.State
	selectionAfter  selection.State

	tree bool
	pool *character.Pool
	keys keys.Generator
}

// Option configures a State.
type Option func(*State)

// WithEntityStore sets the entity store; entity.DefaultStore otherwise.
func WithEntityStore(s *entity.Store) Option {
	return func(st *State) { st.entities = s }
}

// WithPool sets the character pool; character.DefaultPool otherwise.
func WithPool(p *character.Pool) Option {
	return func(st *State) { st.pool = p }
}

// WithKeyGenerator sets the block key generator; keys.Default otherwise.
func WithKeyGenerator(g keys.Generator) Option {
	return func(st *State) { st.keys = g }
}

// WithTree makes FromText produce tree nodes.
func WithTree(tree bool) Option {
	return func(st *State) { st.tree = tree }
}

// WithBlocks replaces the block map.
func WithBlocks(m *block.Map) Option {
	return func(st *State) { st.blocks = m }
}

// WithSelectionBefore replaces the selection before the change.
func WithSelectionBefore(s selection.State) Option {
	return func(st *State) { st.selectionBefore = s }
}

// WithSelectionAfter replaces the selection after the change.
func WithSelectionAfter(s selection.State) Option {
	return func(st *State) { st.selectionAfter = s }
}

func newState(opts []Option) *State {
	st := &State{
		entities: entity.DefaultStore,
		pool:     character.DefaultPool,
		keys:     keys.Default,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// FromText creates a document with one unstyled block per line of text.
// delimiter splits lines; DefaultDelimiter when nil. Stray carriage returns
// are removed from each line.
func FromText(text string, delimiter *regexp.Regexp, opts ...Option) *State {
	if delimiter == nil {
		delimiter = DefaultDelimiter
	}
	st := newState(opts)

	lines := delimiter.Split(text, -1)
	blocks := make([]*block.Block, len(lines))
	for i, line := range lines {
		blocks[i] = block.New(block.Config{
			Key:  st.keys.Generate(),
			Text: strings.ReplaceAll(line, "\r", ""),
			Pool: st.pool,
			Tree: st.tree,
		})
	}
	if st.tree {
		for i, b := range blocks {
			var linkOpts []block.Option
			if i > 0 {
				linkOpts = append(linkOpts, block.WithPrevSibling(blocks[i-1].Key()))
			}
			if i < len(blocks)-1 {
				linkOpts = append(linkOpts, block.WithNextSibling(blocks[i+1].Key()))
			}
			blocks[i] = b.With(linkOpts...)
		}
	}
	return st.init(block.NewMap(blocks...))
}

// FromBlocks creates a document from blocks in order. Tree mode follows
// the first block unless overridden with WithTree.
func FromBlocks(blocks []*block.Block, opts ...Option) *State {
	if len(blocks) > 0 {
		opts = append([]Option{WithTree(blocks[0].IsTree())}, opts...)
	}
	return newState(opts).init(block.NewMap(blocks...))
}

func (st *State) init(m *block.Map) *State {
	st.blocks = m
	sel := selection.CreateEmpty("")
	if first := m.First(); first != nil {
		sel = selection.CreateEmpty(first.Key())
	}
	st.selectionBefore = sel
	st.selectionAfter = sel
	return st
}

// With returns a copy of st with the options applied.
func (st *State) With(opts ...Option) *State {
	c := *st
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Blocks returns the block map.
func (st *State) Blocks() *block.Map { return st.blocks }

// Entities returns the entity store.
func (st *State) Entities() *entity.Store { return st.entities }

// Pool returns the character pool.
func (st *State) Pool() *character.Pool { return st.pool }

// Keys returns the block key generator.
func (st *State) Keys() keys.Generator { return st.keys }

// IsTree reports whether blocks are tree nodes.
func (st *State) IsTree() bool { return st.tree }

// SelectionBefore returns the selection before the producing change.
func (st *State) SelectionBefore() selection.State { return st.selectionBefore }

// SelectionAfter returns the selection after the producing change.
func (st *State) SelectionAfter() selection.State { return st.selectionAfter }

// Block returns the block for key, or nil.
func (st *State) Block(key string) *block.Block { return st.blocks.Get(key) }

// BlockOrErr returns the block for key or block.ErrNotFound.
func (st *State) BlockOrErr(key string) (*block.Block, error) {
	if b := st.blocks.Get(key); b != nil {
		return b, nil
	}
	return nil, block.NotFound(key)
}

// KeyBefore returns the key preceding key in document order, or "".
func (st *State) KeyBefore(key string) string { return st.blocks.KeyBefore(key) }

// KeyAfter returns the key following key in document order, or "".
func (st *State) KeyAfter(key string) string { return st.blocks.KeyAfter(key) }

// BlockBefore returns the block preceding key, or nil.
func (st *State) BlockBefore(key string) *block.Block { return st.blocks.Before(key) }

// BlockAfter returns the block following key, or nil.
func (st *State) BlockAfter(key string) *block.Block { return st.blocks.After(key) }

// FirstBlock returns the first block, or nil.
func (st *State) FirstBlock() *block.Block { return st.blocks.First() }

// LastBlock returns the last block, or nil.
func (st *State) LastBlock() *block.Block { return st.blocks.Last() }

// PlainText joins block texts with delimiter; "\n" when empty.
func (st *State) PlainText(delimiter string) string {
	if delimiter == "" {
		delimiter = "\n"
	}
	parts := make([]string, 0, st.blocks.Len())
	st.blocks.Each(func(_ int, b *block.Block) bool {
		parts = append(parts, b.Text())
		return true
	})
	return strings.Join(parts, delimiter)
}

// HasText reports whether the document holds any text. A single block
// holding only a zero-width space counts as empty.
func (st *State) HasText() bool {
	n := st.blocks.Len()
	if n == 0 {
		return false
	}
	if n > 1 {
		return true
	}
	text := st.blocks.First().Text()
	return text != "" && text != "\u200B"
}

// CreateEntity registers a new entity in the document's store.
func (st *State) CreateEntity(typ string, mutability entity.Mutability, data entity.Data) string {
	return st.entities.Create(typ, mutability, data)
}

// Entity returns the entity for key.
func (st *State) Entity(key string) (*entity.Entity, error) {
	return st.entities.Get(key)
}

// LastCreatedEntityKey returns the most recently created entity key.
func (st *State) LastCreatedEntityKey() string {
	return st.entities.LastCreatedKey()
}

// MergeEntityData overlays data onto the entity at key.
func (st *State) MergeEntityData(key string, data entity.Data) (*entity.Entity, error) {
	return st.entities.MergeData(key, data)
}

// ReplaceEntityData replaces the data of the entity at key.
func (st *State) ReplaceEntityData(key string, data entity.Data) (*entity.Entity, error) {
	return st.entities.ReplaceData(key, data)
}
