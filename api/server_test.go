package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/service"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateSessionFunc  func(ctx context.Context, layoutName string) (*service.SessionInfo, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc   func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc  func(ctx context.Context, sessionID string) error
	MoveFunc           func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error)
	BulkMoveFunc       func(ctx context.Context, sessionID string, directions []string) (*service.BulkMoveResult, error)
	ResetFunc          func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
	SolveFunc          func(ctx context.Context, sessionID string) (*service.SolveResult, error)
	ListLayoutsFunc    func(ctx context.Context) ([]*service.LayoutInfo, error)
	GetLayoutFunc      func(ctx context.Context, name string) (*engine.BoardLayout, error)
	NewPuzzleFunc      func(ctx context.Context, difficulty string) (*service.PuzzleInfo, error)
}

func (m *MockGameService) CreateSession(ctx context.Context, layoutName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, layoutName)
	}
	return &service.SessionInfo{ID: "test-session", LayoutName: layoutName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, LayoutName: "Test Board", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) Move(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, direction)
	}
	return &service.MoveResult{Success: true, Direction: direction, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) BulkMove(ctx context.Context, sessionID string, directions []string) (*service.BulkMoveResult, error) {
	if m.BulkMoveFunc != nil {
		return m.BulkMoveFunc(ctx, sessionID, directions)
	}
	return &service.BulkMoveResult{
		MovesExecuted:  len(directions),
		RequestedMoves: len(directions),
		Success:        true,
		GameState:      &engine.GameState{},
	}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetMoveHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetMoveHistoryFunc != nil {
		return m.GetMoveHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{Page: opts.Page, PageSize: opts.Limit}, nil
}

func (m *MockGameService) Solve(ctx context.Context, sessionID string) (*service.SolveResult, error) {
	if m.SolveFunc != nil {
		return m.SolveFunc(ctx, sessionID)
	}
	return &service.SolveResult{Solvable: true, OptimalMoves: 3}, nil
}

func (m *MockGameService) ListLayouts(ctx context.Context) ([]*service.LayoutInfo, error) {
	if m.ListLayoutsFunc != nil {
		return m.ListLayoutsFunc(ctx)
	}
	return []*service.LayoutInfo{{Name: "Test Board", Rows: 5, Cols: 5}}, nil
}

func (m *MockGameService) GetLayout(ctx context.Context, name string) (*engine.BoardLayout, error) {
	if m.GetLayoutFunc != nil {
		return m.GetLayoutFunc(ctx, name)
	}
	return &engine.BoardLayout{Name: name, Rows: 5, Cols: 5}, nil
}

func (m *MockGameService) NewPuzzle(ctx context.Context, difficulty string) (*service.PuzzleInfo, error) {
	if m.NewPuzzleFunc != nil {
		return m.NewPuzzleFunc(ctx, difficulty)
	}
	return &service.PuzzleInfo{Name: "Procedural", Difficulty: difficulty, OptimalMoves: 7}, nil
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHandleCreateSession(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)

	rec := doRequest(t, server, "POST", "/api/sessions", map[string]string{"layout": "Crystal Maze"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var info service.SessionInfo
	decodeBody(t, rec, &info)
	if info.ID != "test-session" || info.LayoutName != "Crystal Maze" {
		t.Errorf("Unexpected session info: %+v", info)
	}
}

func TestHandleCreateSessionError(t *testing.T) {
	server := NewServer(&MockGameService{
		CreateSessionFunc: func(ctx context.Context, layoutName string) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("layout '%s' not found", layoutName)
		},
	}, nil)

	rec := doRequest(t, server, "POST", "/api/sessions", map[string]string{"layout": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleListSessionsSorted(t *testing.T) {
	now := time.Now()
	server := NewServer(&MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "older", LastAccessedAt: now.Add(-time.Hour)},
				{ID: "newer", LastAccessedAt: now},
			}, nil
		},
	}, nil)

	rec := doRequest(t, server, "GET", "/api/sessions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count != 2 || len(resp.Sessions) != 2 {
		t.Fatalf("Unexpected response: %+v", resp)
	}
	if resp.Sessions[0].ID != "newer" {
		t.Error("Default order should be most recently accessed first")
	}
}

func TestHandleGetSessionNotFound(t *testing.T) {
	server := NewServer(&MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("session %q not found", sessionID)
		},
	}, nil)

	rec := doRequest(t, server, "GET", "/api/sessions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleDeleteSession(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "DELETE", "/api/sessions/abc", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestHandleMove(t *testing.T) {
	var gotDirection string
	server := NewServer(&MockGameService{
		MoveFunc: func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
			gotDirection = direction
			return &service.MoveResult{
				Success:   true,
				Direction: direction,
				To:        engine.Position{Row: 0, Col: 4},
				GameState: &engine.GameState{Robot: engine.Position{Row: 0, Col: 4}},
			}, nil
		},
	}, nil)

	rec := doRequest(t, server, "POST", "/api/sessions/abc/move", map[string]string{"direction": "east"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotDirection != "east" {
		t.Errorf("Direction not forwarded, got %q", gotDirection)
	}

	var result service.MoveResult
	decodeBody(t, rec, &result)
	if !result.Success || result.To != (engine.Position{Row: 0, Col: 4}) {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestHandleMoveInvalidBody(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	req := httptest.NewRequest("POST", "/api/sessions/abc/move", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleBulkMove(t *testing.T) {
	server := NewServer(&MockGameService{
		BulkMoveFunc: func(ctx context.Context, sessionID string, directions []string) (*service.BulkMoveResult, error) {
			return &service.BulkMoveResult{
				MovesExecuted:  2,
				RequestedMoves: len(directions),
				Success:        true,
				GameState:      &engine.GameState{Won: true},
			}, nil
		},
	}, nil)

	rec := doRequest(t, server, "POST", "/api/sessions/abc/bulk-move",
		map[string][]string{"moves": {"east", "south"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var result service.BulkMoveResult
	decodeBody(t, rec, &result)
	if result.MovesExecuted != 2 || !result.GameState.Won {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestHandleReset(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "POST", "/api/sessions/abc/reset", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestHandleGetHistoryQueryParams(t *testing.T) {
	var gotOpts service.HistoryOptions
	server := NewServer(&MockGameService{
		GetMoveHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			gotOpts = opts
			return &service.HistoryResponse{}, nil
		},
	}, nil)

	rec := doRequest(t, server, "GET", "/api/sessions/abc/history?page=2&limit=5&order=asc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotOpts.Page != 2 || gotOpts.Limit != 5 || gotOpts.Order != "asc" {
		t.Errorf("Query params not forwarded: %+v", gotOpts)
	}
}

func TestHandleSolve(t *testing.T) {
	server := NewServer(&MockGameService{
		SolveFunc: func(ctx context.Context, sessionID string) (*service.SolveResult, error) {
			return &service.SolveResult{Solvable: true, OptimalMoves: 4, Directions: []string{"east", "south", "west", "north"}}, nil
		},
	}, nil)

	rec := doRequest(t, server, "GET", "/api/sessions/abc/solve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var result service.SolveResult
	decodeBody(t, rec, &result)
	if !result.Solvable || result.OptimalMoves != 4 || len(result.Directions) != 4 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestHandleListLayouts(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "GET", "/api/layouts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var layouts []*service.LayoutInfo
	decodeBody(t, rec, &layouts)
	if len(layouts) != 1 || layouts[0].Name != "Test Board" {
		t.Errorf("Unexpected layouts: %+v", layouts)
	}
}

func TestHandleGetLayout(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "GET", "/api/layouts/Crystal%20Maze", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var layout engine.BoardLayout
	decodeBody(t, rec, &layout)
	if layout.Name != "Crystal Maze" {
		t.Errorf("Unexpected layout: %+v", layout)
	}
}

func TestHandleGetLayoutNotFound(t *testing.T) {
	server := NewServer(&MockGameService{
		GetLayoutFunc: func(ctx context.Context, name string) (*engine.BoardLayout, error) {
			return nil, fmt.Errorf("layout '%s' not found", name)
		},
	}, nil)

	rec := doRequest(t, server, "GET", "/api/layouts/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleNewPuzzle(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "POST", "/api/puzzles", map[string]string{"difficulty": "medium"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}

	var puzzle service.PuzzleInfo
	decodeBody(t, rec, &puzzle)
	if puzzle.Difficulty != "medium" {
		t.Errorf("Unexpected puzzle: %+v", puzzle)
	}
}

func TestHandleNewPuzzleUnknownDifficulty(t *testing.T) {
	server := NewServer(&MockGameService{
		NewPuzzleFunc: func(ctx context.Context, difficulty string) (*service.PuzzleInfo, error) {
			return nil, fmt.Errorf("unknown difficulty %q", difficulty)
		},
	}, nil)

	rec := doRequest(t, server, "POST", "/api/puzzles", map[string]string{"difficulty": "impossible"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestHandleWebSocketRequiresSession(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	rec := doRequest(t, server, "GET", "/ws", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a session param, got %d", rec.Code)
	}
}
