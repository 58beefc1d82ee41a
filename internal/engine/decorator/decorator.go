// Package decorator assigns decorator keys to the characters of a block and
// partitions a block into the decorator and style ranges a renderer
// consumes.
package decorator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
)

// Decorator computes one decoration key per character of a block; "" means
// undecorated. Implementations must be deterministic for a given block and
// content.
type Decorator interface {
	Decorations(b *block.Block, cs *content.State) []string
}

// Strategy reports the ranges of a block a composite entry decorates.
type Strategy interface {
	FindRanges(b *block.Block, cs *content.State, found func(start, end int))
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(b *block.Block, cs *content.State, found func(start, end int))

// FindRanges calls f.
func (f StrategyFunc) FindRanges(b *block.Block, cs *content.State, found func(start, end int)) {
	f(b, cs, found)
}

// Entry is one decorator of a Composite.
type Entry struct {
	Name     string
	Strategy Strategy
	Props    map[string]any
}

// Composite combines strategies. Earlier entries win: a range is decorated
// only when none of its characters is already taken. Keys have the form
// "<entry index>.<match counter>".
type Composite struct {
	entries []Entry
}

// NewComposite creates a composite decorator.
func NewComposite(entries ...Entry) *Composite {
	return &Composite{entries: entries}
}

// Decorations implements Decorator.
func (c *Composite) Decorations(b *block.Block, cs *content.State) []string {
	out := make([]string, b.Length())
	for i, e := range c.entries {
		counter := 0
		e.Strategy.FindRanges(b, cs, func(start, end int) {
			start, end = max(start, 0), min(end, len(out))
			if start >= end || !free(out[start:end]) {
				return
			}
			key := fmt.Sprintf("%d.%d", i, counter)
			for j := start; j < end; j++ {
				out[j] = key
			}
			counter++
		})
	}
	return out
}

func free(slots []string) bool {
	for _, s := range slots {
		if s != "" {
			return false
		}
	}
	return true
}

// IndexForKey returns the entry index encoded in a decoration key, or -1.
func (c *Composite) IndexForKey(key string) int {
	head, _, ok := strings.Cut(key, ".")
	if !ok {
		return -1
	}
	i, err := strconv.Atoi(head)
	if err != nil || i < 0 || i >= len(c.entries) {
		return -1
	}
	return i
}

// Name returns the name of the entry that produced key.
func (c *Composite) Name(key string) string {
	if i := c.IndexForKey(key); i >= 0 {
		return c.entries[i].Name
	}
	return ""
}

// Props returns the props of the entry that produced key.
func (c *Composite) Props(key string) map[string]any {
	if i := c.IndexForKey(key); i >= 0 {
		return c.entries[i].Props
	}
	return nil
}

// Len returns the number of entries.
func (c *Composite) Len() int { return len(c.entries) }

// EntityStrategy decorates runs of characters whose entity has type typ.
func EntityStrategy(typ string) Strategy {
	return StrategyFunc(func(b *block.Block, cs *content.State, found func(start, end int)) {
		b.FindEntityRanges(func(m *character.Metadata) bool {
			key := m.Entity()
			if key == "" {
				return false
			}
			e, err := cs.Entity(key)
			return err == nil && e.Type() == typ
		}, found)
	})
}

// RegexStrategy decorates every match of re in the block text.
func RegexStrategy(re *regexp.Regexp) Strategy {
	return StrategyFunc(func(b *block.Block, _ *content.State, found func(start, end int)) {
		text := b.Text()
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			start := utf8.RuneCountInString(text[:loc[0]])
			found(start, start+utf8.RuneCountInString(text[loc[0]:loc[1]]))
		}
	})
}
