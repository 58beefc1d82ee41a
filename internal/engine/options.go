package engine

import (
	"io"
	"log/slog"

	"github.com/sompylasar/draft-js/internal/engine/decorator"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
	DefaultMaxDepth       = 4
)

// config holds the settings shared by EditorState and Editor.
type config struct {
	maxUndoEntries int
	allowUndo      bool
	decorator      decorator.Decorator
	logger         *slog.Logger
	debugChecks    bool
	readOnly       bool
}

func defaultConfig() config {
	return config{
		maxUndoEntries: DefaultMaxUndoEntries,
		allowUndo:      true,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures an EditorState or Editor during creation.
type Option func(*config)

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(c *config) {
		if max > 0 {
			c.maxUndoEntries = max
		}
	}
}

// WithAllowUndo enables or disables undo history.
func WithAllowUndo(allow bool) Option {
	return func(c *config) {
		c.allowUndo = allow
	}
}

// WithDecorator sets the decorator used to build block trees.
func WithDecorator(d decorator.Decorator) Option {
	return func(c *config) {
		c.decorator = d
	}
}

// WithLogger sets the logger for recoverable warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebugChecks validates tree documents after every push and logs any
// inconsistency.
func WithDebugChecks(enabled bool) Option {
	return func(c *config) {
		c.debugChecks = enabled
	}
}

// WithReadOnly creates a read-only Editor.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(c *config) {
		c.readOnly = true
	}
}
