package level

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultLayout is the layout picked when none is requested.
const DefaultLayout = "default"

// File is the on-disk map format: a named map with one or more layouts and an
// optional tile id to sprite legend.
type File struct {
	Name     string             `json:"name"`
	TileSize int                `json:"tile_size,omitempty"`
	Layouts  map[string][][]int `json:"layouts"`
	Legend   map[string]string  `json:"legend,omitempty"`
}

// Load reads a map file from disk.
func Load(path, layout string) (*TileMap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	return Parse(b, layout)
}

// LoadFromFS reads a map file from an fs.FS (e.g. embedded levels).
func LoadFromFS(fsys fs.FS, path, layout string) (*TileMap, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	return Parse(b, layout)
}

// Parse decodes a map file and builds the requested layout. An empty layout
// name selects "default", or the first layout by name if there is none.
func Parse(b []byte, layout string) (*TileMap, error) {
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	if len(f.Layouts) == 0 {
		return nil, fmt.Errorf("level: map %q has no layouts", f.Name)
	}

	name := layout
	if name == "" {
		name = DefaultLayout
		if _, ok := f.Layouts[name]; !ok {
			names := make([]string, 0, len(f.Layouts))
			for n := range f.Layouts {
				names = append(names, n)
			}
			sort.Strings(names)
			name = names[0]
		}
	}
	rows, ok := f.Layouts[name]
	if !ok {
		return nil, fmt.Errorf("level: map %q has no layout %q", f.Name, name)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("level: layout %q is empty", name)
	}

	m := New(rows, f.TileSize)
	m.Name = f.Name
	if len(f.Legend) > 0 {
		m.Legend = make(map[int]string, len(f.Legend))
		for k, v := range f.Legend {
			id, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("level: legend key %q: %w", k, err)
			}
			m.Legend[id] = v
		}
	}
	return m, nil
}
