package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/raw"
)

// loadDocument reads a raw JSON or YAML document, or a plain text file
// with one block per line.
func (a *app) loadDocument(path string) (*content.State, error) {
	if isPlainText(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return content.FromText(string(data), nil, a.cfg.ContentOptions()...), nil
	}
	return raw.Load(path)
}

// saveDocument writes cs to path; plain text paths get the raw JSON form
// next to them.
func saveDocument(path string, cs *content.State) (string, error) {
	if isPlainText(path) {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	}
	return path, raw.Save(path, cs)
}

func isPlainText(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}
