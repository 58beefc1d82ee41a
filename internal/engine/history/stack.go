package history

import (
	"time"

	"github.com/sompylasar/draft-js/internal/engine/content"
)

// Entry is one undo or redo step.
type Entry struct {
	Content    *content.State
	ChangeType ChangeType
	Timestamp  time.Time
}

// Info provides read-only info about an entry, for displaying history.
type Info struct {
	ChangeType ChangeType
	Timestamp  time.Time
	Blocks     int
}

type node struct {
	entry Entry
	next  *node
}

// Stack is a persistent LIFO of entries. The zero value is empty. Push and
// Pop return new stacks; the receiver is unchanged.
type Stack struct {
	top  *node
	size int
}

// Push returns s with e on top. A zero Timestamp is set to now.
func (s Stack) Push(e Entry) Stack {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return Stack{top: &node{entry: e, next: s.top}, size: s.size + 1}
}

// Peek returns the top entry.
func (s Stack) Peek() (Entry, bool) {
	if s.top == nil {
		return Entry{}, false
	}
	return s.top.entry, true
}

// Pop returns the top entry and the stack below it.
func (s Stack) Pop() (Entry, Stack, bool) {
	if s.top == nil {
		return Entry{}, s, false
	}
	return s.top.entry, Stack{top: s.top.next, size: s.size - 1}, true
}

// Len returns the number of entries.
func (s Stack) Len() int { return s.size }

// IsEmpty reports whether the stack has no entries.
func (s Stack) IsEmpty() bool { return s.size == 0 }

// Truncate returns s holding at most max of its newest entries. max <= 0
// means unbounded.
func (s Stack) Truncate(max int) Stack {
	if max <= 0 || s.size <= max {
		return s
	}
	entries := s.Entries()[:max]
	var out Stack
	for i := len(entries) - 1; i >= 0; i-- {
		out = out.Push(entries[i])
	}
	return out
}

// Entries returns the entries newest first.
func (s Stack) Entries() []Entry {
	out := make([]Entry, 0, s.size)
	for n := s.top; n != nil; n = n.next {
		out = append(out, n.entry)
	}
	return out
}

// Info returns info about the entries, newest first.
func (s Stack) Info() []Info {
	entries := s.Entries()
	out := make([]Info, len(entries))
	for i, e := range entries {
		out[i] = Info{ChangeType: e.ChangeType, Timestamp: e.Timestamp}
		if e.Content != nil {
			out[i].Blocks = e.Content.Blocks().Len()
		}
	}
	return out
}
