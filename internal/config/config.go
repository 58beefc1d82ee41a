// Package config loads draftctl settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, which may pull in others through an @include key
//  3. DRAFT_* environment variables
//
// Example file:
//
//	[editor]
//	maxDepth = 4
//	maxUndoEntries = 500
//	treeMode = false
//
//	[logging]
//	level = "debug"
//
//	[decorators]
//	scripts = ["hashtags.lua"]
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sompylasar/draft-js/internal/config/loader"
	"github.com/sompylasar/draft-js/internal/engine"
	"github.com/sompylasar/draft-js/internal/engine/content"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DRAFT_"

// maxIncludeDepth bounds @include nesting.
const maxIncludeDepth = 8

var (
	// ErrFileNotFound indicates an explicitly requested file is missing.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidSetting indicates a setting with a bad type or value.
	ErrInvalidSetting = errors.New("invalid setting")
)

// ParseError is returned for malformed configuration files.
type ParseError = loader.ParseError

// Config holds every setting.
type Config struct {
	Editor     Editor     `toml:"editor"`
	Logging    Logging    `toml:"logging"`
	Decorators Decorators `toml:"decorators"`
}

// Editor configures editor states.
type Editor struct {
	// MaxDepth is the deepest list nesting Tab may produce.
	MaxDepth int `toml:"maxDepth"`
	// MaxUndoEntries bounds the undo stack.
	MaxUndoEntries int `toml:"maxUndoEntries"`
	// AllowUndo enables history recording.
	AllowUndo bool `toml:"allowUndo"`
	// TreeMode makes new documents from plain text tree documents.
	TreeMode bool `toml:"treeMode"`
	// Debug validates tree structure after every push.
	Debug bool `toml:"debug"`
}

// Logging configures the logger.
type Logging struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// Decorators lists decorator strategy scripts.
type Decorators struct {
	// Scripts are Lua files, resolved against the config file directory.
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: Editor{
			MaxDepth:       engine.DefaultMaxDepth,
			MaxUndoEntries: engine.DefaultMaxUndoEntries,
			AllowUndo:      true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the per-user config file location, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "draftctl", "config.toml")
}

// Load resolves settings using the file at path, which must exist unless
// path is empty.
func Load(path string) (Config, error) {
	return load(loader.DefaultFS(), path, true)
}

// LoadOptional is Load with a missing file treated as empty.
func LoadOptional(path string) (Config, error) {
	return load(loader.DefaultFS(), path, false)
}

func load(fsys loader.FileSystem, path string, required bool) (Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		file, err := loader.NewTOMLLoaderWithFS(fsys, path).LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return Config{}, err
		}
		if file == nil && required {
			return Config{}, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		merged = loader.DeepMerge(merged, file)
	}

	env, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return Config{}, err
	}
	merged = loader.DeepMerge(merged, env)
	splitScripts(merged)

	cfg, err := fromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		cfg.Decorators.Scripts = resolvePaths(filepath.Dir(path), cfg.Decorators.Scripts)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.Editor.MaxDepth < 0 {
		return fmt.Errorf("editor.maxDepth %d: %w", c.Editor.MaxDepth, ErrInvalidSetting)
	}
	if c.Editor.MaxUndoEntries < 0 {
		return fmt.Errorf("editor.maxUndoEntries %d: %w", c.Editor.MaxUndoEntries, ErrInvalidSetting)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidSetting)
	}
	return nil
}

// EngineOptions converts the editor settings to engine options.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMaxUndoEntries(c.Editor.MaxUndoEntries),
		engine.WithAllowUndo(c.Editor.AllowUndo),
		engine.WithDebugChecks(c.Editor.Debug),
	}
}

// ContentOptions converts the editor settings to options for new documents.
func (c Config) ContentOptions() []content.Option {
	return []content.Option{content.WithTree(c.Editor.TreeMode)}
}

func toMap(c Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]any) (Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if len(c.Decorators.Scripts) == 0 {
		c.Decorators.Scripts = nil
	}
	return c, nil
}

// splitScripts accepts a path list where a script array is expected, so
// that DRAFT_SCRIPTS=a.lua:b.lua works.
func splitScripts(m map[string]any) {
	dec, ok := m["decorators"].(map[string]any)
	if !ok {
		return
	}
	s, ok := dec["scripts"].(string)
	if !ok {
		return
	}
	var list []any
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	dec["scripts"] = list
}

func resolvePaths(base string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(base, p)
	}
	return out
}
