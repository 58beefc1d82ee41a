// Package entity holds out-of-band objects such as links or mentions that
// characters reference by key, and the Store that registers them.
package entity

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"
)

// Mutability controls how text annotated with an entity may be edited.
type Mutability string

// Mutability values.
const (
	// Mutable text may be edited freely; the entity stays attached.
	Mutable Mutability = "MUTABLE"

	// Immutable text is removed as a whole; partial edits strip the entity.
	Immutable Mutability = "IMMUTABLE"

	// Segmented text is removed by whitespace-delimited segment.
	Segmented Mutability = "SEGMENTED"
)

// Valid reports whether m is a known mutability.
func (m Mutability) Valid() bool {
	switch m {
	case Mutable, Immutable, Segmented:
		return true
	}
	return false
}

// ErrNotFound is returned when no entity is registered under a key.
var ErrNotFound = errors.New("entity not found")

// Data is the opaque payload of an entity. It is never modified in place.
type Data map[string]any

// Entity is an immutable entity instance.
type Entity struct {
	typ        string
	mutability Mutability
	data       Data
}

// New creates an entity instance.
func New(typ string, mutability Mutability, data Data) *Entity {
	if data == nil {
		data = Data{}
	}
	return &Entity{typ: typ, mutability: mutability, data: data}
}

// Type returns the entity type, e.g. "LINK".
func (e *Entity) Type() string { return e.typ }

// Mutability returns the entity mutability.
func (e *Entity) Mutability() Mutability { return e.mutability }

// Data returns the entity payload. Callers must not modify it.
func (e *Entity) Data() Data { return e.data }

// Store registers entities under monotonically increasing keys. Keys are
// never reused and entities are never removed, only replaced.
type Store struct {
	mu        sync.RWMutex
	instances map[string]*Entity
	counter   uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{instances: make(map[string]*Entity)}
}

// DefaultStore is the process-wide store used when a document is not given
// its own.
var DefaultStore = NewStore()

// Create registers a new entity and returns its key.
func (s *Store) Create(typ string, mutability Mutability, data Data) string {
	return s.Add(New(typ, mutability, data))
}

// Add registers e and returns its key.
func (s *Store) Add(e *Entity) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	key := strconv.FormatUint(s.counter, 10)
	s.instances[key] = e
	return key
}

// Get returns the entity registered under key.
func (s *Store) Get(key string) (*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.instances[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return e, nil
}

// MergeData replaces the entity at key with one whose data is the old data
// overlaid with data.
func (s *Store) MergeData(key string, data Data) (*Entity, error) {
	return s.update(key, func(old Data) Data {
		merged := make(Data, len(old)+len(data))
		maps.Copy(merged, old)
		maps.Copy(merged, data)
		return merged
	})
}

// ReplaceData replaces the entity at key with one carrying data.
func (s *Store) ReplaceData(key string, data Data) (*Entity, error) {
	return s.update(key, func(Data) Data { return data })
}

func (s *Store) update(key string, fn func(Data) Data) (*Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.instances[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	next := New(old.typ, old.mutability, fn(old.data))
	s.instances[key] = next
	return next, nil
}

// LastCreatedKey returns the most recently allocated key, or "" if none.
func (s *Store) LastCreatedKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.counter == 0 {
		return ""
	}
	return strconv.FormatUint(s.counter, 10)
}

// Len returns the number of registered entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}
