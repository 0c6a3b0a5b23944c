package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Edju03/Richochet/game/engine"
)

func writeLayoutFile(t *testing.T, layout *engine.BoardLayout) string {
	t.Helper()
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		t.Fatalf("Marshal layout: %v", err)
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func openCornersLayout() *engine.BoardLayout {
	return &engine.BoardLayout{
		Name:   "Corners",
		Rows:   5,
		Cols:   5,
		Start:  engine.Position{Row: 0, Col: 0},
		Amber:  engine.Position{Row: 0, Col: 4},
		Violet: engine.Position{Row: 4, Col: 4},
		Goal:   engine.Position{Row: 4, Col: 0},
		Walls:  []engine.WallSpec{},
	}
}

func boxWalls(p engine.Position) []engine.WallSpec {
	walls := []engine.WallSpec{}
	for _, dir := range engine.AllDirections {
		walls = append(walls, engine.WallSpec{From: p, To: p.Step(dir)})
	}
	return walls
}

func TestValidateLayout_Valid(t *testing.T) {
	result := validateLayout(writeLayoutFile(t, openCornersLayout()))

	if !result.Valid {
		t.Fatalf("Expected valid, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	for _, want := range []string{"Corners", "5x5", "Optimal solution: 3 moves"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in info output, got: %s", want, joined)
		}
	}
}

func TestValidateLayout_DeclaredOptimalChecked(t *testing.T) {
	good := openCornersLayout()
	good.OptimalMoves = 3
	if result := validateLayout(writeLayoutFile(t, good)); !result.Valid {
		t.Errorf("Correct declared optimal should pass: %v", result.Errors)
	}

	bad := openCornersLayout()
	bad.OptimalMoves = 2
	result := validateLayout(writeLayoutFile(t, bad))
	if result.Valid {
		t.Fatal("Wrong declared optimal should fail")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "optimal_moves") {
		t.Errorf("Expected optimal mismatch error, got: %v", result.Errors)
	}
}

func TestValidateLayout_Unsolvable(t *testing.T) {
	layout := openCornersLayout()
	layout.Goal = engine.Position{Row: 2, Col: 2}
	layout.Walls = boxWalls(layout.Goal)

	result := validateLayout(writeLayoutFile(t, layout))
	if result.Valid {
		t.Fatal("Walled-in goal should fail validation")
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "walled off") {
		t.Errorf("Expected connectivity error, got: %s", joined)
	}
	if !strings.Contains(joined, "Unsolvable") {
		t.Errorf("Expected solvability error, got: %s", joined)
	}
}

func TestValidateLayout_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	result := validateLayout(path)
	if result.Valid {
		t.Error("Malformed JSON should fail validation")
	}
}

func TestValidateLayout_MissingFile(t *testing.T) {
	result := validateLayout(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Missing file should fail validation")
	}
}

func TestValidateLayout_StructuralError(t *testing.T) {
	layout := openCornersLayout()
	layout.Goal = layout.Start // shared placement

	result := validateLayout(writeLayoutFile(t, layout))
	if result.Valid {
		t.Error("Shared placement should fail validation")
	}
}

func TestFloodFill(t *testing.T) {
	board, err := openCornersLayout().Build()
	if err != nil {
		t.Fatal(err)
	}

	reachable := floodFill(board)
	if len(reachable) != 25 {
		t.Errorf("Open board should be fully reachable, got %d cells", len(reachable))
	}

	sealed := openCornersLayout()
	sealed.Walls = boxWalls(engine.Position{Row: 2, Col: 2})
	board, err = sealed.Build()
	if err != nil {
		t.Fatal(err)
	}

	reachable = floodFill(board)
	if len(reachable) != 24 {
		t.Errorf("Expected 24 reachable cells around the sealed one, got %d", len(reachable))
	}
	if reachable[engine.Position{Row: 2, Col: 2}] {
		t.Error("Sealed cell must not be reachable")
	}
}
