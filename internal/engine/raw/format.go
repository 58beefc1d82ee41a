package raw

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sompylasar/draft-js/internal/engine/content"
)

// Format is a file encoding of a Document.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Marshal encodes cs in format f.
func Marshal(cs *content.State, f Format) ([]byte, error) {
	doc, err := Encode(cs)
	if err != nil {
		return nil, err
	}
	switch f {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case YAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
}

// Unmarshal decodes data in format f.
func Unmarshal(data []byte, f Format, opts ...content.Option) (*content.State, error) {
	var doc Document
	var err error
	switch f {
	case JSON:
		err = json.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f, err)
	}
	return Decode(doc, opts...)
}

// Load reads a document file, choosing the format from its extension.
func Load(path string, opts ...content.Option) (*content.State, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cs, err := Unmarshal(data, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}

// Save writes cs to path, choosing the format from its extension.
func Save(path string, cs *content.State) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(cs, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
