package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Edju03/Richochet/game/engine"
)

// DefaultConfigDir is where layout JSON files are looked up when the caller
// does not override the directory.
const DefaultConfigDir = "configs"

// Manager serves the puzzle layout catalogue: the built-in curated layouts
// plus any JSON layout files found in its directory. File layouts shadow
// curated ones with the same name, so a board can be tweaked without a
// rebuild. Lookups are case-insensitive. Safe for concurrent use.
type Manager struct {
	dir string

	mu      sync.RWMutex
	layouts map[string]*engine.BoardLayout
}

// NewManager creates a manager over the given directory and loads the
// catalogue. A missing directory is not an error; the curated layouts are
// served alone. An empty dir selects DefaultConfigDir.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		dir = DefaultConfigDir
	}
	m := &Manager{dir: dir}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload rebuilds the catalogue from the curated layouts and the directory
// contents. Invalid layout files are reported as errors rather than
// silently skipped.
func (m *Manager) Reload() error {
	layouts := make(map[string]*engine.BoardLayout)
	for _, l := range engine.CuratedLayouts() {
		layout := l
		layouts[strings.ToLower(layout.Name)] = &layout
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			m.mu.Lock()
			m.layouts = layouts
			m.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read config directory %s: %w", m.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		layout, err := engine.LoadLayout(path)
		if err != nil {
			return fmt.Errorf("config validation: %s: %w", entry.Name(), err)
		}
		layouts[strings.ToLower(layout.Name)] = layout
	}

	m.mu.Lock()
	m.layouts = layouts
	m.mu.Unlock()
	return nil
}

// List returns every layout sorted by name.
func (m *Manager) List() []engine.BoardLayout {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]engine.BoardLayout, 0, len(m.layouts))
	for _, l := range m.layouts {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get looks up a layout by name, case-insensitively.
func (m *Manager) Get(name string) (*engine.BoardLayout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.layouts[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("layout %q not found", name)
	}
	copied := *l
	return &copied, nil
}

// GetDefault returns the layout new sessions start on: the first layout by
// name that the solver verifies as winnable. Catalogue entries that do not
// build or cannot be solved are skipped, so a player starting without naming
// a layout never lands on an unwinnable board. With the curated catalogue
// alone this selects "Crystal Maze".
func (m *Manager) GetDefault() *engine.BoardLayout {
	all := m.List()
	if len(all) == 0 {
		return nil
	}
	for i := range all {
		board, err := all[i].Build()
		if err != nil {
			continue
		}
		if _, ok := engine.Solve(board, engine.DefaultMaxMoves); ok {
			copied := all[i]
			return &copied
		}
	}
	copied := all[0]
	return &copied
}

// Add registers a layout in the in-memory catalogue, e.g. a generated
// puzzle the caller wants replayable by name. It does not write to disk.
func (m *Manager) Add(l engine.BoardLayout) error {
	if err := engine.ValidateLayout(&l); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layouts[strings.ToLower(l.Name)] = &l
	return nil
}

// Dir returns the directory the manager reads layout files from.
func (m *Manager) Dir() string { return m.dir }
