package service

import (
	"context"

	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/generator"
	"github.com/Edju03/Richochet/game/session"
)

// GameService defines all puzzle-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, layoutName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, directions []string) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	Solve(ctx context.Context, sessionID string) (*SolveResult, error)

	// Layouts and Generation
	ListLayouts(ctx context.Context) ([]*LayoutInfo, error)
	GetLayout(ctx context.Context, name string) (*engine.BoardLayout, error)
	NewPuzzle(ctx context.Context, difficulty string) (*PuzzleInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(layout *engine.BoardLayout) (*session.Session, error)
	Get(id string) (*session.Session, error)
	List() []*session.Session
	Delete(id string) error
	Save(s *session.Session)
}

// LayoutManager serves the puzzle layout catalogue
type LayoutManager interface {
	Get(name string) (*engine.BoardLayout, error)
	List() []engine.BoardLayout
	GetDefault() *engine.BoardLayout
	Add(l engine.BoardLayout) error
}

// PuzzleSource produces new puzzles for a difficulty
type PuzzleSource interface {
	Generate(d generator.Difficulty) (*generator.Puzzle, error)
}
