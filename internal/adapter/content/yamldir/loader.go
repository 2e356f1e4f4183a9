// Package yamldir loads game content from a directory of YAML files.
// Each file decodes as one content.Pack; the packs merge into a single
// validated registry, so content can be split by theme without the
// files knowing about each other.
package yamldir

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"idleverse/internal/domain/content"
)

// LoadPacks reads every .yaml/.yml file directly under dir, one pack per
// file. ReadDir returns entries in name order, so duplicate id errors
// during the later merge are attributed deterministically.
func LoadPacks(dir string) ([]content.Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	packs := make([]content.Pack, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		var pack content.Pack
		if err := yaml.Unmarshal(raw, &pack); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		packs = append(packs, pack)
	}
	if len(packs) == 0 {
		return nil, fmt.Errorf("no content files in %s", dir)
	}
	return packs, nil
}

// Load merges the directory's packs into a validated registry.
func Load(dir string) (*content.Static, error) {
	packs, err := LoadPacks(dir)
	if err != nil {
		return nil, err
	}
	registry, err := content.NewStatic(packs...)
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", dir, err)
	}
	return registry, nil
}
