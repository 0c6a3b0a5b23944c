package engine

import (
	"fmt"
	"time"
)

// GameState is the mutable runtime state of a puzzle in play. The board it
// refers to is held by the engine and never changes; the collected set only
// grows until the game is reset.
type GameState struct {
	Robot          Position           `json:"robot"`
	Collected      ItemSet            `json:"collected"`
	CollectedItems []string           `json:"collected_items"`
	MoveCount      int                `json:"move_count"`
	Won            bool               `json:"won"`
	Message        string             `json:"message"`
	LastPath       []Position         `json:"last_path,omitempty"`
	MoveHistory    []MoveHistoryEntry `json:"move_history"`
}

// MoveHistoryEntry records a single attempted slide.
type MoveHistoryEntry struct {
	Direction  Direction `json:"direction"`
	From       Position  `json:"from"`
	To         Position  `json:"to"`
	Collected  []string  `json:"collected"`
	MoveNumber int       `json:"move_number"`
	Timestamp  int64     `json:"timestamp"`
	Success    bool      `json:"success"`
}

// NewGameState returns a fresh state at the board's start position with an
// empty collected set.
func NewGameState(b *Board) *GameState {
	return &GameState{
		Robot:          b.Start(),
		Collected:      0,
		CollectedItems: []string{},
		Message:        "Collect amber and violet, then reach the goal.",
		MoveHistory:    []MoveHistoryEntry{},
	}
}

// Engine provides the main interface for puzzle play operations.
type Engine interface {
	// Game state management
	Board() *Board
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsWon() bool
	MoveCount() int
	RobotPosition() Position

	// Movement operations
	Move(dir Direction) bool
	CanMove(dir Direction) bool
	PossibleMoves() []Direction

	// Solver access
	Solve(maxMoves int) (int, bool)
	SolveDirections(maxMoves int) ([]Direction, bool)

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface over a frozen Board.
type GameEngine struct {
	board *Board
	state *GameState
}

var _ Engine = (*GameEngine)(nil)

// NewEngine creates an engine for the given verified board.
func NewEngine(board *Board) (*GameEngine, error) {
	if board == nil {
		return nil, fmt.Errorf("board cannot be nil")
	}
	return &GameEngine{
		board: board,
		state: NewGameState(board),
	}, nil
}

// Board returns the engine's board.
func (e *GameEngine) Board() *Board { return e.board }

// GetState returns the current game state.
func (e *GameEngine) GetState() *GameState { return e.state }

// SetState replaces the game state (used when restoring a persisted game).
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if !e.board.InBounds(state.Robot) {
		return fmt.Errorf("state validation: robot position %s is out of bounds", state.Robot)
	}
	state.CollectedItems = state.Collected.Names()
	e.state = state
	return nil
}

// Reset discards the current game and returns a fresh state at the start
// position.
func (e *GameEngine) Reset() *GameState {
	e.state = NewGameState(e.board)
	return e.state
}

// IsWon reports whether the goal has been collected.
func (e *GameEngine) IsWon() bool { return e.state.Won }

// MoveCount returns the number of successful slides so far.
func (e *GameEngine) MoveCount() int { return e.state.MoveCount }

// RobotPosition returns the robot's current position.
func (e *GameEngine) RobotPosition() Position { return e.state.Robot }

// Move slides the robot in the given direction, collecting any items crossed
// along the way. It returns false if the game is already won, the direction
// is invalid, or the robot cannot move at all; a blocked slide does not
// count as a move.
func (e *GameEngine) Move(dir Direction) bool {
	from := e.state.Robot
	success := false

	if !e.state.Won && dir.Valid() {
		final, path := e.board.Slide(from, dir)
		if final != from {
			success = true
			e.state.Collected = e.board.CollectAlong(path, e.state.Collected)
			e.state.CollectedItems = e.state.Collected.Names()
			e.state.Robot = final
			e.state.MoveCount++
			e.state.LastPath = path
			e.state.Won = e.state.Collected.Has(ItemGoal)
			e.state.Message = e.describe()
		} else {
			e.state.LastPath = path
			e.state.Message = fmt.Sprintf("Blocked: cannot slide %s from %s", dir, from)
		}
	}

	e.state.MoveHistory = append(e.state.MoveHistory, MoveHistoryEntry{
		Direction:  dir,
		From:       from,
		To:         e.state.Robot,
		Collected:  e.state.Collected.Names(),
		MoveNumber: e.state.MoveCount,
		Timestamp:  time.Now().Unix(),
		Success:    success,
	})

	return success
}

func (e *GameEngine) describe() string {
	if e.state.Won {
		return fmt.Sprintf("Goal reached in %d moves!", e.state.MoveCount)
	}
	switch {
	case e.state.Collected.Count() == 2:
		return "Both collectibles gathered, head for the goal."
	case e.state.Collected.Count() == 1:
		return fmt.Sprintf("Collected %s.", e.state.Collected)
	}
	return fmt.Sprintf("Moved to %s.", e.state.Robot)
}

// CanMove reports whether a slide in the given direction would move the
// robot at all.
func (e *GameEngine) CanMove(dir Direction) bool {
	if e.state.Won || !dir.Valid() {
		return false
	}
	final, _ := e.board.Slide(e.state.Robot, dir)
	return final != e.state.Robot
}

// PossibleMoves returns every direction the robot can currently slide in.
func (e *GameEngine) PossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range AllDirections {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// Solve returns the optimal move count from the CURRENT state, not from the
// board's start; on a fresh game the two are the same.
func (e *GameEngine) Solve(maxMoves int) (int, bool) {
	dirs, ok := e.SolveDirections(maxMoves)
	if !ok {
		return 0, false
	}
	return len(dirs), true
}

// SolveDirections returns one optimal move sequence from the current state.
func (e *GameEngine) SolveDirections(maxMoves int) ([]Direction, bool) {
	if e.state.Won {
		return []Direction{}, true
	}
	return solveFrom(e.board, e.state.Robot, e.state.Collected, maxMoves)
}

// GetMoveHistory returns all attempted slides, including blocked ones.
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the most recent history entry, or nil if none.
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
