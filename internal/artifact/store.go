// Package artifact stores per-unit source slices on disk and reads them
// back for analysis sampling. Report templating on top of these files is
// someone else's job; the store only guarantees the layout
// <run>/{kind}s/{sanitized-name}.js.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"codescope/internal/logging"
	"codescope/internal/partition"
)

// Store is a readable artifact store rooted at one run directory.
type Store struct {
	root string
}

// NewStore opens (creating if needed) a store at root.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root: %w", err)
	}
	return &Store{root: root}, nil
}

// NewRunStore creates a fresh uniquely-named run directory under base.
func NewRunStore(base string) (*Store, error) {
	run := fmt.Sprintf("run_%s", uuid.New().String()[:8])
	return NewStore(filepath.Join(base, run))
}

// Root returns the store's run directory.
func (s *Store) Root() string { return s.root }

// WriteUnits writes one file per unit and returns unit ID -> relative
// path actually written. Two units sanitizing to the same name within a
// kind get a disambiguating ordinal suffix instead of silently
// overwriting each other.
func (s *Store) WriteUnits(units []partition.Unit) (map[int]string, error) {
	paths := make(map[int]string, len(units))
	taken := make(map[string]bool, len(units))

	for _, u := range units {
		base := partition.RelativePath(u.Kind, u.Name)
		rel := base + ".js"
		for ord := 2; taken[rel]; ord++ {
			rel = fmt.Sprintf("%s_%d.js", base, ord)
		}
		taken[rel] = true

		abs := filepath.Join(s.root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("create kind dir: %w", err)
		}
		if err := os.WriteFile(abs, []byte(u.Code), 0o644); err != nil {
			return nil, fmt.Errorf("write unit %q: %w", u.Name, err)
		}
		paths[u.ID] = rel
	}

	logging.StoreDebug("wrote %d unit artifacts under %s", len(units), s.root)
	return paths, nil
}

// WritePositionMap persists the position map as positionmap.json for
// downstream sourcemap writers.
func (s *Store) WritePositionMap(pm partition.PositionMap) error {
	data, err := json.MarshalIndent(pm, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal position map: %w", err)
	}
	return os.WriteFile(filepath.Join(s.root, "positionmap.json"), data, 0o644)
}

// ReadUnit reads a previously written unit artifact by relative path.
// Callers sampling code treat a missing file as skippable, not fatal.
func (s *Store) ReadUnit(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("read unit artifact %s: %w", rel, err)
	}
	return string(data), nil
}

// WriteAnalysis persists one analysis result under analyses/.
func (s *Store) WriteAnalysis(name, content string) error {
	dir := filepath.Join(s.root, "analyses")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create analyses dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, partition.Sanitize(name)+".md"), []byte(content), 0o644)
}
