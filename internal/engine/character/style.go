package character

import (
	"sort"
	"strings"
)

// styleKeySep separates style names inside a StyleSet key.
const styleKeySep = "\x1f"

// StyleSet is an immutable, canonically ordered set of inline style names.
// The zero value is the empty set.
type StyleSet struct {
	styles []string
	key    string
}

// NewStyleSet creates a set from the given style names.
// Duplicates and empty names are dropped.
func NewStyleSet(styles ...string) StyleSet {
	if len(styles) == 0 {
		return StyleSet{}
	}
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	uniq := out[:0]
	for _, s := range out {
		if len(uniq) == 0 || s != uniq[len(uniq)-1] {
			uniq = append(uniq, s)
		}
	}
	return fromSorted(uniq)
}

func fromSorted(styles []string) StyleSet {
	if len(styles) == 0 {
		return StyleSet{}
	}
	return StyleSet{styles: styles, key: strings.Join(styles, styleKeySep)}
}

// Len returns the number of styles in the set.
func (s StyleSet) Len() int {
	return len(s.styles)
}

// IsEmpty reports whether the set has no styles.
func (s StyleSet) IsEmpty() bool {
	return len(s.styles) == 0
}

// Has reports whether style is in the set.
func (s StyleSet) Has(style string) bool {
	i := sort.SearchStrings(s.styles, style)
	return i < len(s.styles) && s.styles[i] == style
}

// Add returns a set that also contains style.
func (s StyleSet) Add(style string) StyleSet {
	if style == "" || s.Has(style) {
		return s
	}
	i := sort.SearchStrings(s.styles, style)
	out := make([]string, 0, len(s.styles)+1)
	out = append(out, s.styles[:i]...)
	out = append(out, style)
	out = append(out, s.styles[i:]...)
	return fromSorted(out)
}

// Remove returns a set without style.
func (s StyleSet) Remove(style string) StyleSet {
	if !s.Has(style) {
		return s
	}
	out := make([]string, 0, len(s.styles)-1)
	for _, st := range s.styles {
		if st != style {
			out = append(out, st)
		}
	}
	return fromSorted(out)
}

// Union returns the set of styles present in either set.
func (s StyleSet) Union(other StyleSet) StyleSet {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	all := make([]string, 0, len(s.styles)+len(other.styles))
	all = append(all, s.styles...)
	all = append(all, other.styles...)
	return NewStyleSet(all...)
}

// Equal reports whether both sets contain the same styles.
func (s StyleSet) Equal(other StyleSet) bool {
	return s.key == other.key
}

// Key returns a canonical string identifying the set's contents.
func (s StyleSet) Key() string {
	return s.key
}

// Slice returns the styles in canonical order.
func (s StyleSet) Slice() []string {
	if len(s.styles) == 0 {
		return nil
	}
	out := make([]string, len(s.styles))
	copy(out, s.styles)
	return out
}

// String returns the styles as a bracketed, comma-separated list.
func (s StyleSet) String() string {
	return "[" + strings.Join(s.styles, ",") + "]"
}
