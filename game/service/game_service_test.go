package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Edju03/Richochet/game/config"
	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/generator"
	"github.com/Edju03/Richochet/game/session"
)

func newTestService(t *testing.T) GameService {
	t.Helper()
	layouts, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	// An "Open Run" style board with a known 3-move solution keeps the
	// tests deterministic.
	if err := layouts.Add(engine.BoardLayout{
		Name: "Test Corners", Rows: 5, Cols: 5,
		Start:  engine.Position{Row: 0, Col: 0},
		Amber:  engine.Position{Row: 0, Col: 4},
		Violet: engine.Position{Row: 4, Col: 4},
		Goal:   engine.Position{Row: 4, Col: 0},
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	sessions := session.NewManager(nil, 0)
	gen := generator.New(generator.Config{Rand: rand.New(rand.NewSource(1))})
	return NewGameService(sessions, layouts, gen)
}

func createTestSession(t *testing.T, svc GameService) *SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), "Test Corners")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return info
}

func TestCreateSessionDefaultLayout(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if info.ID == "" || info.LayoutName == "" {
		t.Errorf("Incomplete session info: %+v", info)
	}
	if info.GameState == nil || info.GameState.MoveCount != 0 {
		t.Error("Expected a fresh game state")
	}
	if info.BoardRender == "" {
		t.Error("Expected a rendered board")
	}

	// A session created without naming a layout must be winnable.
	layout, err := svc.GetLayout(ctx, info.LayoutName)
	if err != nil {
		t.Fatalf("GetLayout(%q): %v", info.LayoutName, err)
	}
	board, err := layout.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := engine.Solve(board, engine.DefaultMaxMoves); !ok {
		t.Errorf("Default session started on unwinnable layout %q", info.LayoutName)
	}
}

func TestCreateSessionUnknownLayout(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.CreateSession(context.Background(), "No Such Layout"); err == nil {
		t.Error("Expected error for unknown layout")
	}
}

func TestCreateSessionByDifficulty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "easy")
	if err != nil {
		t.Fatalf("CreateSession by difficulty: %v", err)
	}
	if info.GameState == nil || info.GameState.MoveCount != 0 {
		t.Error("Expected a fresh game state")
	}

	// The generated layout is registered, so the session's layout resolves
	// by name afterwards.
	layout, err := svc.GetLayout(ctx, info.LayoutName)
	if err != nil {
		t.Fatalf("Generated layout not registered: %v", err)
	}
	board, err := layout.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := engine.Solve(board, engine.DefaultMaxMoves); !ok {
		t.Error("Session board should be solvable")
	}
}

func TestGetLayout(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	layout, err := svc.GetLayout(ctx, "test corners")
	if err != nil {
		t.Fatalf("GetLayout: %v", err)
	}
	if layout.Name != "Test Corners" {
		t.Errorf("Unexpected layout: %+v", layout)
	}

	if _, err := svc.GetLayout(ctx, "missing"); err == nil {
		t.Error("Expected error for unknown layout")
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info := createTestSession(t, svc)

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != info.ID {
		t.Error("GetSession returned a different session")
	}

	all, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 session, got %d", len(all))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("Deleted session should not be retrievable")
	}
}

func TestMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info := createTestSession(t, svc)

	result, err := svc.Move(ctx, info.ID, "east")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !result.Success {
		t.Fatal("Expected eastward slide to succeed")
	}
	if result.To != (engine.Position{Row: 0, Col: 4}) {
		t.Errorf("Expected robot at (0,4), got %s", result.To)
	}
	if len(result.CollectedNow) != 1 || result.CollectedNow[0] != "amber" {
		t.Errorf("Expected amber collected, got %v", result.CollectedNow)
	}
	if len(result.Path) != 5 {
		t.Errorf("Expected a 5-cell path, got %v", result.Path)
	}

	// Direction aliases from the REST surface parse too.
	if _, err := svc.Move(ctx, info.ID, "down"); err != nil {
		t.Errorf("Alias direction rejected: %v", err)
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)
	if _, err := svc.Move(context.Background(), info.ID, "diagonal"); err == nil {
		t.Error("Expected error for invalid direction")
	}
}

func TestMoveUnknownSession(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Move(context.Background(), "missing", "east"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestBulkMoveWins(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	result, err := svc.BulkMove(context.Background(), info.ID, []string{"east", "south", "west"})
	if err != nil {
		t.Fatalf("BulkMove: %v", err)
	}
	if result.MovesExecuted != 3 || !result.Success {
		t.Errorf("Expected 3 executed moves and success, got %+v", result)
	}
	if !result.GameState.Won {
		t.Error("Expected the puzzle solved")
	}
	if len(result.Steps) != 3 || !result.Steps[2].Victory {
		t.Errorf("Expected the final step flagged as victory: %+v", result.Steps)
	}
}

func TestBulkMoveStopsOnBlocked(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	result, err := svc.BulkMove(context.Background(), info.ID, []string{"north", "east"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MovesExecuted != 0 {
		t.Errorf("Expected no executed moves, got %d", result.MovesExecuted)
	}
	if result.StopReasonCode != "blocked" || result.StoppedOnMove != 1 {
		t.Errorf("Expected blocked on move 1, got %+v", result)
	}
}

func TestBulkMoveStopsOnVictory(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	result, err := svc.BulkMove(context.Background(), info.ID,
		[]string{"east", "south", "west", "north"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MovesExecuted != 3 {
		t.Errorf("Expected 3 executed moves, got %d", result.MovesExecuted)
	}
	if result.StopReasonCode != "victory" {
		t.Errorf("Expected victory stop, got %q", result.StopReasonCode)
	}
}

func TestReset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info := createTestSession(t, svc)

	if _, err := svc.Move(ctx, info.ID, "east"); err != nil {
		t.Fatal(err)
	}
	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if state.MoveCount != 0 || state.Collected != 0 {
		t.Error("Expected a fresh state after reset")
	}
}

func TestGetMoveHistoryPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info := createTestSession(t, svc)

	for _, dir := range []string{"east", "west", "east", "west", "east"} {
		if _, err := svc.Move(ctx, info.ID, dir); err != nil {
			t.Fatal(err)
		}
	}

	resp, err := svc.GetMoveHistory(ctx, info.ID, HistoryOptions{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("GetMoveHistory: %v", err)
	}
	if resp.TotalMoves != 5 || len(resp.Moves) != 2 || resp.TotalPages != 3 {
		t.Errorf("Unexpected pagination: %+v", resp)
	}
	if !resp.HasNext || resp.HasPrevious {
		t.Error("Page 1 of 3 should have next but not previous")
	}

	desc, err := svc.GetMoveHistory(ctx, info.ID, HistoryOptions{Page: 1, Limit: 5, Order: "desc"})
	if err != nil {
		t.Fatal(err)
	}
	if desc.Moves[0].MoveNumber != 5 {
		t.Errorf("Descending order should start with the last move, got %d", desc.Moves[0].MoveNumber)
	}
}

func TestSolveFromCurrentState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info := createTestSession(t, svc)

	result, err := svc.Solve(ctx, info.ID)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !result.Solvable || result.OptimalMoves != 3 {
		t.Errorf("Expected 3-move solution, got %+v", result)
	}

	if _, err := svc.Move(ctx, info.ID, "east"); err != nil {
		t.Fatal(err)
	}
	result, err = svc.Solve(ctx, info.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.OptimalMoves != 2 {
		t.Errorf("Expected 2 moves remaining, got %d", result.OptimalMoves)
	}
}

func TestListLayouts(t *testing.T) {
	svc := newTestService(t)
	layouts, err := svc.ListLayouts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// Curated catalogue plus the test layout.
	if len(layouts) < 2 {
		t.Errorf("Expected several layouts, got %d", len(layouts))
	}
}

func TestNewPuzzle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	puzzle, err := svc.NewPuzzle(ctx, "easy")
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	if puzzle.Layout == nil || puzzle.OptimalMoves < 1 {
		t.Errorf("Incomplete puzzle info: %+v", puzzle)
	}

	// The generated layout is registered, so a session can start on it.
	if _, err := svc.CreateSession(ctx, puzzle.Name); err != nil {
		t.Errorf("Session on generated layout: %v", err)
	}

	if _, err := svc.NewPuzzle(ctx, "impossible"); err == nil {
		t.Error("Expected error for unknown difficulty")
	}
}
