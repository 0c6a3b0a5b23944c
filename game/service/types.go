package service

import (
	"time"

	"github.com/Edju03/Richochet/game/engine"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string              `json:"id"`
	LayoutName     string              `json:"layout_name"`
	Difficulty     string              `json:"difficulty,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	Layout         *engine.BoardLayout `json:"layout"`
	BoardRender    string              `json:"board_render,omitempty"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string          `json:"type"` // "move", "collected", "victory", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// MoveResult contains the result of a single slide
type MoveResult struct {
	Success       bool              `json:"success"`
	Direction     string            `json:"direction"`
	From          engine.Position   `json:"from"`
	To            engine.Position   `json:"to"`
	Path          []engine.Position `json:"path,omitempty"`
	CollectedNow  []string          `json:"collected_now,omitempty"`
	GameState     *engine.GameState `json:"game_state"`
	Message       string            `json:"message"`
	Events        []GameEvent       `json:"events,omitempty"`
	PossibleMoves []string          `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed slide in a bulk call
type StepInfo struct {
	Idx       int             `json:"idx"`
	Dir       string          `json:"dir"`
	From      engine.Position `json:"from"`
	To        engine.Position `json:"to"`
	Collected []string        `json:"collected"`
	Success   bool            `json:"success"`
	Victory   bool            `json:"victory,omitempty"`
}

// BulkMoveResult contains the result of multiple slides
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // blocked|invalid_direction|victory
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Steps          []StepInfo        `json:"steps,omitempty"`
	StartPos       engine.Position   `json:"start_pos"`
	EndPos         engine.Position   `json:"end_pos"`
	Message        string            `json:"message,omitempty"`
	PossibleMoves  []string          `json:"possible_moves,omitempty"`
}

// SolveResult reports the solver's verdict from the session's current state
type SolveResult struct {
	Solvable     bool     `json:"solvable"`
	OptimalMoves int      `json:"optimal_moves"`
	Directions   []string `json:"directions,omitempty"`
	Message      string   `json:"message"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// LayoutInfo summarizes a catalogue layout
type LayoutInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
	OptimalMoves int    `json:"optimal_moves,omitempty"`
}

// PuzzleInfo describes a freshly generated puzzle
type PuzzleInfo struct {
	Name         string              `json:"name"`
	Difficulty   string              `json:"difficulty"`
	OptimalMoves int                 `json:"optimal_moves"`
	Attempts     int                 `json:"attempts"`
	Fallback     bool                `json:"fallback"`
	Layout       *engine.BoardLayout `json:"layout"`
	BoardRender  string              `json:"board_render,omitempty"`
}
