package session

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Edju03/Richochet/game/engine"
)

// DefaultTTL is how long an idle session is kept before cleanup removes it.
const DefaultTTL = 24 * time.Hour

// Session is one puzzle in play: its engine, the layout it was built from,
// and access timestamps for expiry. Sessions are owned by a Manager; the
// Manager's lock serializes access to the engine.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Layout         *engine.BoardLayout
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Manager tracks active sessions by ID. IDs are UUIDs and lookups are
// case-insensitive. An optional Persistence backend receives every session
// mutation so games survive restarts. Safe for concurrent use.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	persistence Persistence
	ttl         time.Duration
}

// NewManager creates a session manager. persistence may be nil for
// in-memory-only operation; ttl <= 0 selects DefaultTTL.
func NewManager(persistence Persistence, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		persistence: persistence,
		ttl:         ttl,
	}
}

// Create starts a new session on the given layout.
func (m *Manager) Create(layout *engine.BoardLayout) (*Session, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout cannot be nil")
	}
	board, err := layout.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build board for session: %w", err)
	}
	game, err := engine.NewEngine(board)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:             uuid.NewString(),
		Engine:         game,
		Layout:         layout,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.mu.Lock()
	m.sessions[strings.ToLower(s.ID)] = s
	m.mu.Unlock()

	m.persist(s)
	return s, nil
}

// Get returns the session and refreshes its last-access time.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("session %q not found", id)
	}
	s.LastAccessedAt = time.Now()
	return s, nil
}

// List returns all active sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Delete removes a session and its persisted state.
func (m *Manager) Delete(id string) error {
	key := strings.ToLower(id)

	m.mu.Lock()
	_, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %q not found", id)
	}
	if m.persistence != nil {
		if err := m.persistence.Delete(key); err != nil {
			log.Printf("Warning: failed to delete persisted session %s: %v", key, err)
		}
	}
	return nil
}

// Save pushes the session's current state to the persistence backend. Call
// it after mutating the session's engine.
func (m *Manager) Save(s *Session) {
	m.persist(s)
}

// CleanupExpiredSessions removes sessions idle for longer than the TTL and
// returns how many were dropped.
func (m *Manager) CleanupExpiredSessions() int {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	var expired []string
	for key, s := range m.sessions {
		if s.LastAccessedAt.Before(cutoff) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if m.persistence != nil {
		for _, key := range expired {
			if err := m.persistence.Delete(key); err != nil {
				log.Printf("Warning: failed to delete persisted session %s: %v", key, err)
			}
		}
	}
	return len(expired)
}

// LoadPersistedSessions restores every persisted session into memory,
// skipping ones that no longer rebuild (e.g. a layout schema change). It
// returns how many sessions were restored.
func (m *Manager) LoadPersistedSessions() (int, error) {
	if m.persistence == nil {
		return 0, nil
	}
	persisted, err := m.persistence.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load persisted sessions: %w", err)
	}

	restored := 0
	for _, p := range persisted {
		s, err := restoreSession(p)
		if err != nil {
			log.Printf("Warning: skipping persisted session %s: %v", p.ID, err)
			continue
		}
		m.mu.Lock()
		m.sessions[strings.ToLower(s.ID)] = s
		m.mu.Unlock()
		restored++
	}
	return restored, nil
}

func restoreSession(p *PersistedSession) (*Session, error) {
	if p.Layout == nil {
		return nil, fmt.Errorf("persisted session has no layout")
	}
	board, err := p.Layout.Build()
	if err != nil {
		return nil, err
	}
	game, err := engine.NewEngine(board)
	if err != nil {
		return nil, err
	}
	if p.GameState != nil {
		if err := game.SetState(p.GameState); err != nil {
			return nil, err
		}
	}
	return &Session{
		ID:             p.ID,
		Engine:         game,
		Layout:         p.Layout,
		CreatedAt:      p.CreatedAt,
		LastAccessedAt: p.LastAccessedAt,
	}, nil
}

// persist saves the session best-effort; persistence failures are logged,
// not surfaced, so a full disk never blocks play.
func (m *Manager) persist(s *Session) {
	if m.persistence == nil {
		return
	}
	p := &PersistedSession{
		ID:             s.ID,
		Layout:         s.Layout,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
		GameState:      s.Engine.GetState(),
	}
	if err := m.persistence.Save(p); err != nil {
		log.Printf("Warning: failed to persist session %s: %v", s.ID, err)
	}
}
