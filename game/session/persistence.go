package session

import (
	"time"

	"github.com/Edju03/Richochet/game/engine"
)

// PersistedSession is the serialized form of a session: the layout to
// rebuild the board from and the game state to restore onto it.
type PersistedSession struct {
	ID             string              `json:"id"`
	Layout         *engine.BoardLayout `json:"layout"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
}

// Persistence stores session snapshots across restarts. Implementations
// must be safe for concurrent use.
type Persistence interface {
	Save(s *PersistedSession) error
	Load(id string) (*PersistedSession, error)
	LoadAll() ([]*PersistedSession, error)
	Delete(id string) error
}
