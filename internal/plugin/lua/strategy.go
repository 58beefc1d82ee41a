package lua

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/decorator"
)

// StrategyFunc is the global a script must define.
const StrategyFunc = "strategy"

// Strategy is a decorator strategy backed by a Lua script.
type Strategy struct {
	state *State
	name  string
	props map[string]any
	log   *slog.Logger
}

// Option configures a Strategy.
type Option func(*options)

type options struct {
	log     *slog.Logger
	timeout time.Duration
}

// WithLogger sets the logger that receives script failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTimeout bounds each strategy call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// LoadFile loads a strategy script. The strategy is named after the file
// unless the script sets the global name.
func LoadFile(path string, opts ...Option) (*Strategy, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return load(name, opts, func(s *State) error { return s.DoFile(path) })
}

// LoadString loads a strategy from source.
func LoadString(name, code string, opts ...Option) (*Strategy, error) {
	return load(name, opts, func(s *State) error { return s.DoString(code) })
}

func load(name string, opts []Option, exec func(*State) error) (*Strategy, error) {
	o := options{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	state := NewState(WithExecutionTimeout(o.timeout))
	if err := exec(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if fn := state.GetGlobal(StrategyFunc); fn.Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("load %s: %q: %w", name, StrategyFunc, ErrNotFunction)
	}

	s := &Strategy{state: state, name: name, log: o.log}
	if n, ok := state.GetGlobal("name").(lua.LString); ok && n != "" {
		s.name = string(n)
	}
	if props, ok := ToGoValue(state.GetGlobal("props")).(map[string]any); ok {
		s.props = props
	}
	return s, nil
}

// Name returns the strategy name.
func (s *Strategy) Name() string { return s.name }

// Props returns the props table the script declared, or nil.
func (s *Strategy) Props() map[string]any { return s.props }

// Entry wraps s as a composite decorator entry.
func (s *Strategy) Entry() decorator.Entry {
	return decorator.Entry{Name: s.name, Strategy: s, Props: s.props}
}

// Close releases the interpreter.
func (s *Strategy) Close() error { return s.state.Close() }

// FindRanges implements decorator.Strategy. A failing script decorates
// nothing; the failure is logged.
func (s *Strategy) FindRanges(b *block.Block, _ *content.State, found func(start, end int)) {
	ranges, err := s.Ranges(b.Text(), string(b.Type()), b.Key(), map[string]any(b.Data()))
	if err != nil {
		s.log.Warn("lua strategy failed", "strategy", s.name, "block", b.Key(), "err", err)
		return
	}
	for _, r := range ranges {
		found(r[0], r[1])
	}
}

// Ranges runs the script on one block and returns half-open rune ranges.
func (s *Strategy) Ranges(text, typ, key string, data map[string]any) ([][2]int, error) {
	results, err := s.state.Call(StrategyFunc, text, typ, key, data)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 || results[0] == lua.LNil {
		return nil, nil
	}
	list, ok := results[0].(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("got %s: %w", results[0].Type(), ErrBadResult)
	}

	var out [][2]int
	for i := 1; i <= list.Len(); i++ {
		first, last, err := pair(list.RawGetInt(i))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		start, end, err := runeRange(text, first, last)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if start < end {
			out = append(out, [2]int{start, end})
		}
	}
	return out, nil
}

func pair(v lua.LValue) (int, int, error) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return 0, 0, fmt.Errorf("got %s: %w", v.Type(), ErrBadResult)
	}
	first, ok1 := t.RawGetInt(1).(lua.LNumber)
	last, ok2 := t.RawGetInt(2).(lua.LNumber)
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("want a pair of numbers: %w", ErrBadResult)
	}
	return int(first), int(last), nil
}

// runeRange converts 1-based inclusive byte positions to a half-open rune
// range.
func runeRange(text string, first, last int) (int, int, error) {
	lo, hi := first-1, last
	if lo < 0 || hi > len(text) || hi < lo {
		return 0, 0, fmt.Errorf("positions %d..%d outside text of %d bytes: %w", first, last, len(text), ErrBadResult)
	}
	if !runeBoundary(text, lo) || !runeBoundary(text, hi) {
		return 0, 0, fmt.Errorf("positions %d..%d split a character: %w", first, last, ErrBadResult)
	}
	start := utf8.RuneCountInString(text[:lo])
	return start, start + utf8.RuneCountInString(text[lo:hi]), nil
}

func runeBoundary(text string, i int) bool {
	return i == len(text) || utf8.RuneStart(text[i])
}

// NewDecorator loads every script and combines them in order. The returned
// strategies must be closed by the caller.
func NewDecorator(paths []string, opts ...Option) (*decorator.Composite, []*Strategy, error) {
	strategies := make([]*Strategy, 0, len(paths))
	entries := make([]decorator.Entry, 0, len(paths))
	for _, p := range paths {
		s, err := LoadFile(p, opts...)
		if err != nil {
			for _, loaded := range strategies {
				loaded.Close()
			}
			return nil, nil, err
		}
		strategies = append(strategies, s)
		entries = append(entries, s.Entry())
	}
	return decorator.NewComposite(entries...), strategies, nil
}
