// Package raw converts documents to and from their serializable form:
// plain blocks whose per-character styles and entities are stored as
// offset/length ranges, plus a map of the referenced entities.
//
// Offsets and lengths count runes. Encoding followed by decoding restores
// the style set and entity of every character exactly; entity keys are
// renumbered on the way out and re-registered on the way in.
package raw

import "errors"

// Errors returned by Decode.
var (
	// ErrUnknownEntity indicates an entity range referencing a key missing
	// from the entity map.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrRangeOutOfBounds indicates a style or entity range outside the
	// block text.
	ErrRangeOutOfBounds = errors.New("range out of bounds")

	// ErrInvalidMutability indicates an entity with an unknown mutability.
	ErrInvalidMutability = errors.New("invalid entity mutability")

	// ErrDuplicateKey indicates two blocks with the same key.
	ErrDuplicateKey = errors.New("duplicate block key")

	// ErrUnknownFormat indicates a file extension with no known encoding.
	ErrUnknownFormat = errors.New("unknown document format")
)

// Document is a serializable document.
type Document struct {
	Blocks    []Block           `json:"blocks" yaml:"blocks"`
	EntityMap map[string]Entity `json:"entityMap" yaml:"entityMap"`
}

// Block is a serializable block. Children is set for tree documents only;
// a non-nil Children on any block marks the document as a tree.
type Block struct {
	Key               string             `json:"key" yaml:"key"`
	Type              string             `json:"type" yaml:"type"`
	Text              string             `json:"text" yaml:"text"`
	Depth             int                `json:"depth" yaml:"depth"`
	InlineStyleRanges []InlineStyleRange `json:"inlineStyleRanges" yaml:"inlineStyleRanges"`
	EntityRanges      []EntityRange      `json:"entityRanges" yaml:"entityRanges"`
	Data              map[string]any     `json:"data" yaml:"data"`
	Children          []Block            `json:"children" yaml:"children,omitempty"`
}

// InlineStyleRange applies Style to Length runes starting at Offset.
type InlineStyleRange struct {
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
	Style  string `json:"style" yaml:"style"`
}

// EntityRange attaches the entity numbered Key to Length runes starting at
// Offset.
type EntityRange struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
	Key    int `json:"key" yaml:"key"`
}

// Entity is a serializable entity.
type Entity struct {
	Type       string         `json:"type" yaml:"type"`
	Mutability string         `json:"mutability" yaml:"mutability"`
	Data       map[string]any `json:"data" yaml:"data"`
}

// IsTree reports whether any block carries a children list.
func (d Document) IsTree() bool {
	return anyChildren(d.Blocks)
}

func anyChildren(blocks []Block) bool {
	for _, b := range blocks {
		if b.Children != nil {
			return true
		}
	}
	return false
}

// Len returns the number of blocks, nested ones included.
func (d Document) Len() int {
	return countBlocks(d.Blocks)
}

func countBlocks(blocks []Block) int {
	n := len(blocks)
	for _, b := range blocks {
		n += countBlocks(b.Children)
	}
	return n
}
