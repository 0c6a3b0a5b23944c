// Command validate provides a small CLI that validates board layout JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions and placement constraints
//   - Wall adjacency and dedup behavior via the engine builder
//   - Connectivity: every marked cell is reachable from the start
//   - Solvability: the solver finds a solution within the move budget
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Edju03/Richochet/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLayout loads and validates a single layout JSON file.
// It performs structural checks, connectivity analysis and a solver run.
func validateLayout(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	layout, err := engine.LoadLayout(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	board, err := layout.Build()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to build board: %v", err))
		return result
	}

	// Connectivity: every marked cell must sit in the start's flood-fill
	// component. A marker outside it can never be crossed.
	reachable := floodFill(board)
	for _, marker := range []struct {
		name string
		pos  engine.Position
	}{
		{"amber", board.Amber()},
		{"violet", board.Violet()},
		{"goal", board.Goal()},
	} {
		if !reachable[marker.pos] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %s at %s is walled off from the start", marker.name, marker.pos))
		}
	}

	// Solvability within the standard budget.
	optimal, solvable := engine.Solve(board, engine.DefaultMaxMoves)
	if !solvable {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unsolvable within %d moves", engine.DefaultMaxMoves))
	} else if layout.OptimalMoves > 0 && layout.OptimalMoves != optimal {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Declared optimal_moves %d, solver found %d", layout.OptimalMoves, optimal))
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", layout.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", layout.Rows, layout.Cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Walls: %d interior", len(layout.Walls)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachable cells: %d/%d", len(reachable), layout.Rows*layout.Cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Optimal solution: %d moves", optimal))
		if layout.Difficulty != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Difficulty: %s", layout.Difficulty))
		}
	}

	return result
}

// floodFill returns the set of cells reachable from the start by single
// steps that respect walls. This is a superset of where a sliding robot can
// stop, and exactly the set of cells a slide can cross.
func floodFill(b *engine.Board) map[engine.Position]bool {
	visited := map[engine.Position]bool{b.Start(): true}
	queue := []engine.Position{b.Start()}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, dir := range engine.AllDirections {
			next := cur.Step(dir)
			if !b.InBounds(next) || visited[next] || b.HasWallBetween(cur, next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	layoutDir := "../configs"
	if len(os.Args) > 1 {
		layoutDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(layoutDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding layout files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateLayout(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All layouts are valid!")
	} else {
		fmt.Println("❌ Some layouts have errors")
		os.Exit(1)
	}
}
