// Package selection provides the immutable selection value of a document.
//
// A State has an anchor (where the selection started) and a focus (where it
// currently ends), each a block key plus a rune offset. When the anchor and
// focus coincide the selection is collapsed: a caret with no extent.
package selection

import "fmt"

// State is an immutable selection value. It is comparable with ==.
type State struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int

	// IsBackward is set when the focus precedes the anchor in document order.
	IsBackward bool
	HasFocus   bool
}

// CreateEmpty returns a collapsed selection at offset 0 of key.
func CreateEmpty(key string) State {
	return Collapsed(key, 0)
}

// Collapsed returns a caret at offset in key.
func Collapsed(key string, offset int) State {
	return State{AnchorKey: key, AnchorOffset: offset, FocusKey: key, FocusOffset: offset}
}

// Range returns a forward selection from start to end.
func Range(startKey string, startOffset int, endKey string, endOffset int) State {
	return State{AnchorKey: startKey, AnchorOffset: startOffset, FocusKey: endKey, FocusOffset: endOffset}
}

// IsCollapsed reports whether anchor and focus are the same point.
func (s State) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// StartKey returns the key of the earlier edge.
func (s State) StartKey() string {
	if s.IsBackward {
		return s.FocusKey
	}
	return s.AnchorKey
}

// StartOffset returns the offset of the earlier edge.
func (s State) StartOffset() int {
	if s.IsBackward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

// EndKey returns the key of the later edge.
func (s State) EndKey() string {
	if s.IsBackward {
		return s.AnchorKey
	}
	return s.FocusKey
}

// EndOffset returns the offset of the later edge.
func (s State) EndOffset() int {
	if s.IsBackward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// HasEdgeWithin reports whether the anchor or focus lies within the
// inclusive window [start, end] of blockKey.
func (s State) HasEdgeWithin(blockKey string, start, end int) bool {
	if s.AnchorKey == s.FocusKey && s.AnchorKey == blockKey {
		so, eo := s.StartOffset(), s.EndOffset()
		return (start <= so && so <= end) || (start <= eo && eo <= end)
	}
	if blockKey != s.AnchorKey && blockKey != s.FocusKey {
		return false
	}
	off := s.FocusOffset
	if blockKey == s.AnchorKey {
		off = s.AnchorOffset
	}
	return start <= off && off <= end
}

// Normalize returns an equivalent forward selection.
func (s State) Normalize() State {
	if !s.IsBackward {
		return s
	}
	return State{
		AnchorKey:    s.FocusKey,
		AnchorOffset: s.FocusOffset,
		FocusKey:     s.AnchorKey,
		FocusOffset:  s.AnchorOffset,
		HasFocus:     s.HasFocus,
	}
}

// CollapseToStart returns a caret at the start edge.
func (s State) CollapseToStart() State {
	return s.With(Anchor(s.StartKey(), s.StartOffset()), Focus(s.StartKey(), s.StartOffset()), Backward(false))
}

// CollapseToEnd returns a caret at the end edge.
func (s State) CollapseToEnd() State {
	return s.With(Anchor(s.EndKey(), s.EndOffset()), Focus(s.EndKey(), s.EndOffset()), Backward(false))
}

// Equal reports whether two selections are identical.
func (s State) Equal(other State) bool {
	return s == other
}

// String returns a compact representation such as "a:3-b:0".
func (s State) String() string {
	dir := ""
	if s.IsBackward {
		dir = " backward"
	}
	if s.IsCollapsed() {
		return fmt.Sprintf("%s:%d%s", s.AnchorKey, s.AnchorOffset, dir)
	}
	return fmt.Sprintf("%s:%d-%s:%d%s", s.AnchorKey, s.AnchorOffset, s.FocusKey, s.FocusOffset, dir)
}

// Option overrides fields when copying a State with With.
type Option func(*State)

// With returns a copy of s with the options applied.
func (s State) With(opts ...Option) State {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Anchor sets the anchor point.
func Anchor(key string, offset int) Option {
	return func(s *State) {
		s.AnchorKey = key
		s.AnchorOffset = offset
	}
}

// Focus sets the focus point.
func Focus(key string, offset int) Option {
	return func(s *State) {
		s.FocusKey = key
		s.FocusOffset = offset
	}
}

// Caret collapses the selection at offset in key and clears IsBackward.
func Caret(key string, offset int) Option {
	return func(s *State) {
		*s = s.With(Anchor(key, offset), Focus(key, offset), Backward(false))
	}
}

// Backward sets IsBackward.
func Backward(backward bool) Option {
	return func(s *State) { s.IsBackward = backward }
}

// Focused sets HasFocus.
func Focused(focused bool) Option {
	return func(s *State) { s.HasFocus = focused }
}
