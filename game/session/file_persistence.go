package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FilePersistence stores one JSON file per session under a directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated session on disk.
type FilePersistence struct {
	dir string
	mu  sync.Mutex
}

// NewFilePersistence creates the directory if needed and returns a
// file-backed persistence store.
func NewFilePersistence(dir string) (*FilePersistence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}
	return &FilePersistence{dir: dir}, nil
}

func (f *FilePersistence) path(id string) string {
	return filepath.Join(f.dir, strings.ToLower(id)+".json")
}

// Save writes the session snapshot atomically.
func (f *FilePersistence) Save(s *PersistedSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}

	tmp := f.path(s.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session %s: %w", s.ID, err)
	}
	return os.Rename(tmp, f.path(s.ID))
}

// Load reads one session snapshot by ID.
func (f *FilePersistence) Load(id string) (*PersistedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(f.path(id))
}

func (f *FilePersistence) load(path string) (*PersistedSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s PersistedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session file %s: %w", path, err)
	}
	return &s, nil
}

// LoadAll reads every session snapshot in the directory. Unreadable files
// are skipped so one corrupt snapshot does not block a restart.
func (f *FilePersistence) LoadAll() ([]*PersistedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}

	var out []*PersistedSession
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		s, err := f.load(filepath.Join(f.dir, entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Delete removes a session snapshot; deleting a missing snapshot is not an
// error.
func (f *FilePersistence) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
