package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/generator"
	"github.com/Edju03/Richochet/game/session"
)

// MaxBulkMoves caps how many slides one BulkMove call will execute.
const MaxBulkMoves = 100

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	layouts  LayoutManager
	puzzles  PuzzleSource
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, layouts LayoutManager, puzzles PuzzleSource) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		layouts:  layouts,
		puzzles:  puzzles,
	}
}

// CreateSession creates a new puzzle session. The argument may be a layout
// name, a difficulty (a fresh puzzle is generated and registered), or empty
// for the default layout.
func (s *gameServiceImpl) CreateSession(ctx context.Context, layoutName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var layout *engine.BoardLayout
	if layoutName != "" {
		var err error
		layout, err = s.layouts.Get(layoutName)
		if err != nil {
			if d, derr := generator.ParseDifficulty(layoutName); derr == nil {
				layout, err = s.generateLayout(d)
				if err != nil {
					return nil, err
				}
			} else {
				available := s.layouts.List()
				names := make([]string, 0, len(available))
				for _, l := range available {
					names = append(names, l.Name)
				}
				return nil, fmt.Errorf("layout '%s' not found. Available layouts: %v", layoutName, names)
			}
		}
	} else {
		layout = s.layouts.GetDefault()
		if layout == nil {
			return nil, fmt.Errorf("no layouts available")
		}
	}

	sess, err := s.sessions.Create(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single slide for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("invalid direction '%s' (want north, south, east or west)", direction)
	}

	before := sess.Engine.GetState().Collected
	from := sess.Engine.RobotPosition()
	success := sess.Engine.Move(dir)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:       success,
		Direction:     string(dir),
		From:          from,
		To:            state.Robot,
		Path:          state.LastPath,
		CollectedNow:  collectedDiff(before, state.Collected),
		GameState:     state,
		Message:       state.Message,
		PossibleMoves: directionNames(sess.Engine.PossibleMoves()),
	}
	result.Events = s.moveEvents(sess, before, success)

	s.sessions.Save(sess)
	return result, nil
}

// BulkMove executes slides in order, stopping at the first failure or at
// victory. At most MaxBulkMoves are attempted.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, directions []string) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	requested := len(directions)
	if requested > MaxBulkMoves {
		directions = directions[:MaxBulkMoves]
	}

	result := &BulkMoveResult{
		RequestedMoves: requested,
		StartPos:       sess.Engine.RobotPosition(),
	}

	for i, raw := range directions {
		dir, ok := engine.ParseDirection(raw)
		if !ok {
			result.StopReasonCode = "invalid_direction"
			result.StoppedReason = fmt.Sprintf("invalid direction '%s'", raw)
			result.StoppedOnMove = i + 1
			break
		}

		before := sess.Engine.GetState().Collected
		from := sess.Engine.RobotPosition()
		success := sess.Engine.Move(dir)
		state := sess.Engine.GetState()

		result.Steps = append(result.Steps, StepInfo{
			Idx:       i,
			Dir:       string(dir),
			From:      from,
			To:        state.Robot,
			Collected: collectedDiff(before, state.Collected),
			Success:   success,
			Victory:   state.Won,
		})

		if !success {
			result.StopReasonCode = "blocked"
			result.StoppedReason = state.Message
			result.StoppedOnMove = i + 1
			break
		}
		result.MovesExecuted++

		if state.Won {
			if i+1 < len(directions) {
				result.StopReasonCode = "victory"
				result.StoppedReason = "puzzle solved before the sequence finished"
				result.StoppedOnMove = i + 1
			}
			break
		}
	}

	state := sess.Engine.GetState()
	result.Success = result.MovesExecuted > 0 && result.StopReasonCode == ""
	if state.Won && result.StopReasonCode == "" {
		result.Success = true
	}
	result.GameState = state
	result.EndPos = state.Robot
	result.Message = state.Message
	result.PossibleMoves = directionNames(sess.Engine.PossibleMoves())

	s.sessions.Save(sess)
	return result, nil
}

// Reset restarts the session's puzzle from its initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	state := sess.Engine.Reset()
	s.sessions.Save(sess)
	return state, nil
}

// GetGameState returns the session's current state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns a page of the session's move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Order == "desc" {
		reversed := make([]engine.MoveHistoryEntry, total)
		for i, entry := range history {
			reversed[total-1-i] = entry
		}
		history = reversed
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	startIdx := (page - 1) * limit
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + limit
	if endIdx > total {
		endIdx = total
	}

	return &HistoryResponse{
		Moves:       history[startIdx:endIdx],
		TotalMoves:  total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// Solve reports the optimal continuation from the session's current state
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string) (*SolveResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	dirs, ok := sess.Engine.SolveDirections(engine.DefaultMaxMoves)
	if !ok {
		return &SolveResult{
			Solvable: false,
			Message:  "no solution exists from the current position",
		}, nil
	}
	return &SolveResult{
		Solvable:     true,
		OptimalMoves: len(dirs),
		Directions:   directionNames(dirs),
		Message:      fmt.Sprintf("solvable in %d moves from here", len(dirs)),
	}, nil
}

// ListLayouts returns the layout catalogue
func (s *gameServiceImpl) ListLayouts(ctx context.Context) ([]*LayoutInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layouts := s.layouts.List()
	result := make([]*LayoutInfo, 0, len(layouts))
	for _, l := range layouts {
		result = append(result, &LayoutInfo{
			Name:         l.Name,
			Description:  l.Description,
			Difficulty:   l.Difficulty,
			Rows:         l.Rows,
			Cols:         l.Cols,
			OptimalMoves: l.OptimalMoves,
		})
	}
	return result, nil
}

// GetLayout returns one catalogue layout by name.
func (s *gameServiceImpl) GetLayout(ctx context.Context, name string) (*engine.BoardLayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout, err := s.layouts.Get(name)
	if err != nil {
		return nil, fmt.Errorf("layout '%s' not found", name)
	}
	return layout, nil
}

// generateLayout runs the generator for a difficulty and registers the
// resulting layout in the catalogue. Callers hold s.mu.
func (s *gameServiceImpl) generateLayout(d generator.Difficulty) (*engine.BoardLayout, error) {
	puzzle, err := s.puzzles.Generate(d)
	if err != nil {
		return nil, fmt.Errorf("failed to generate puzzle: %w", err)
	}
	layout := puzzle.Layout()
	if err := s.layouts.Add(*layout); err != nil {
		return nil, fmt.Errorf("failed to register generated layout: %w", err)
	}
	return layout, nil
}

// NewPuzzle generates a puzzle for the difficulty and registers its layout
// in the catalogue so sessions can be created on it by name.
func (s *gameServiceImpl) NewPuzzle(ctx context.Context, difficulty string) (*PuzzleInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := generator.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	puzzle, err := s.puzzles.Generate(d)
	if err != nil {
		return nil, fmt.Errorf("failed to generate puzzle: %w", err)
	}

	layout := puzzle.Layout()
	if err := s.layouts.Add(*layout); err != nil {
		return nil, fmt.Errorf("failed to register generated layout: %w", err)
	}

	return &PuzzleInfo{
		Name:         puzzle.Name,
		Difficulty:   string(puzzle.Difficulty),
		OptimalMoves: puzzle.OptimalMoves,
		Attempts:     puzzle.Attempts,
		Fallback:     puzzle.Fallback,
		Layout:       layout,
		BoardRender:  puzzle.Board.String(),
	}, nil
}

func (s *gameServiceImpl) sessionInfo(sess *session.Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		LayoutName:     sess.Layout.Name,
		Difficulty:     sess.Layout.Difficulty,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		Layout:         sess.Layout,
		BoardRender:    sess.Engine.Board().String(),
	}
}

func (s *gameServiceImpl) moveEvents(sess *session.Session, before engine.ItemSet, success bool) []GameEvent {
	if !success {
		return nil
	}
	state := sess.Engine.GetState()
	now := time.Now()

	var events []GameEvent
	events = append(events, GameEvent{
		Type:      "move",
		Message:   fmt.Sprintf("slid to %s", state.Robot),
		Timestamp: now,
		Position:  state.Robot,
	})
	for _, name := range collectedDiff(before, state.Collected) {
		events = append(events, GameEvent{
			Type:      "collected",
			Message:   fmt.Sprintf("collected %s", name),
			Timestamp: now,
			Position:  state.Robot,
		})
	}
	if state.Won {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   fmt.Sprintf("puzzle solved in %d moves", state.MoveCount),
			Timestamp: now,
			Position:  state.Robot,
		})
	}
	return events
}

// collectedDiff names the items present in after but not in before.
func collectedDiff(before, after engine.ItemSet) []string {
	var out []string
	for _, item := range []engine.Item{engine.ItemAmber, engine.ItemViolet, engine.ItemGoal} {
		if after.Has(item) && !before.Has(item) {
			out = append(out, item.String())
		}
	}
	return out
}

func directionNames(dirs []engine.Direction) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, string(d))
	}
	return out
}
