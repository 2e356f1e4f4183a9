// Package staticfiles serves the content-pack directory over the
// provider port: a generated JSON index plus the pack files
// themselves. The directory the simulation loads from is the one
// clients download, so there is no second copy to drift.
package staticfiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"idleverse/internal/app/ports"
)

type Provider struct {
	Root string
}

// Index lists the pack files in name order as {"files": [...]}.
func (p Provider) Index(_ context.Context) ([]byte, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, fmt.Errorf("read content dir %s: %w", p.Root, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isPackFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	b, err := json.Marshal(map[string][]string{"files": files})
	if err != nil {
		return nil, fmt.Errorf("marshal pack index: %w", err)
	}
	return b, nil
}

// File returns one pack file by its name from the index. Paths that
// escape the root or name anything other than a pack file report not
// found rather than describing what lives there.
func (p Provider) File(_ context.Context, path string) ([]byte, error) {
	full, err := secureJoin(p.Root, path)
	if err != nil || !isPackFile(full) {
		return nil, fmt.Errorf("pack file %q: %w", path, ports.ErrNotFound)
	}
	b, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("pack file %q: %w", path, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("read pack file %q: %w", path, err)
	}
	return b, nil
}

func isPackFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// secureJoin resolves rel under root and rejects anything that would
// land outside it.
func secureJoin(root, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", errors.New("path must be relative and non-empty")
	}
	cleaned := filepath.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.New("path escapes content root")
	}
	return filepath.Join(root, cleaned), nil
}
