// Package keys generates the short unique keys that identify blocks.
package keys

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultLength is the number of hex digits in a generated key.
const DefaultLength = 8

// Generator produces block keys.
type Generator interface {
	Generate() string
}

// UUIDGenerator derives keys from random UUIDs and never returns the same
// key twice. It is safe for concurrent use.
type UUIDGenerator struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	length int
}

// Option configures a UUIDGenerator.
type Option func(*UUIDGenerator)

// WithLength sets the number of hex digits per key (1..32).
func WithLength(n int) Option {
	return func(g *UUIDGenerator) {
		if n > 0 && n <= 32 {
			g.length = n
		}
	}
}

// New creates a UUID-backed generator.
func New(opts ...Option) *UUIDGenerator {
	g := &UUIDGenerator{
		seen:   make(map[string]struct{}),
		length: DefaultLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Default is the process-wide generator.
var Default = New()

// Generate returns a key not previously returned or reserved.
func (g *UUIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:g.length]
		if _, dup := g.seen[id]; dup {
			continue
		}
		g.seen[id] = struct{}{}
		return id
	}
}

// Reserve marks existing keys as taken so Generate never returns them.
func (g *UUIDGenerator) Reserve(keys ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, k := range keys {
		g.seen[k] = struct{}{}
	}
}

// Generate returns a key from the Default generator.
func Generate() string {
	return Default.Generate()
}

// Sequence is a deterministic generator producing prefix0, prefix1, ...
// It is intended for tests and reproducible tooling output.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence creates a deterministic generator.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Generate returns the next key in the sequence.
func (s *Sequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.prefix + strconv.Itoa(s.next)
	s.next++
	return k
}
